package request_models

type PurchaseRequest struct {
	BundleID  string `json:"bundle_id" binding:"required"`
	ReturnURL string `json:"return_url" binding:"required,url"`
}
