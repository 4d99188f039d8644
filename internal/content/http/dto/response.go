package dto

// StoreContentResponse reports the content id of stored bytes.
type StoreContentResponse struct {
	ContentID string `json:"content_id"`
	Size      int    `json:"size"`
}
