package transfer

type SettingsUpdate struct {
	PostingTime string `json:"posting_time" form:"posting_time"`
	Category    string `json:"category" form:"category"`
}
