package compose

// Statuses reported on a Result.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// EchoedInputs restates the request locators on a failed result so the
// caller can correlate without holding the original request. The images
// reference is truncated, since it may be a whole inline document.
type EchoedInputs struct {
	AudioRef   string `json:"audio_ref"`
	ImagesRef  string `json:"images_ref"`
	CaptionRef string `json:"caption_ref,omitempty"`
}

// Result is the caller-facing outcome of one composition request.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`

	VideoLocation  string  `json:"video_location,omitempty"`
	PublicLocation string  `json:"public_location,omitempty"`
	Duration       float64 `json:"duration,omitempty"`
	Width          int     `json:"width,omitempty"`
	Height         int     `json:"height,omitempty"`
	ByteSize       int64   `json:"byte_size,omitempty"`
	Tier           string  `json:"tier,omitempty"`

	ImageCountUsed    int     `json:"image_count_used"`
	AudioDurationUsed float64 `json:"audio_duration_used,omitempty"`

	Warnings []string      `json:"warnings,omitempty"`
	Inputs   *EchoedInputs `json:"echoed_inputs,omitempty"`
}

const echoLimit = 100

func truncateRef(s string) string {
	if len(s) <= echoLimit {
		return s
	}
	return s[:echoLimit] + "..."
}
