package models

// Video is one raw metadata record emitted by yt-dlp for a single video.
// Fields the extractor may omit are pointers so that absence can be told
// apart from a zero value.
type Video struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Duration    *float64 `json:"duration"`
	UploadDate  *string  `json:"upload_date"`
	Uploader    *string  `json:"uploader"`
	WebpageURL  *string  `json:"webpage_url"`
}
