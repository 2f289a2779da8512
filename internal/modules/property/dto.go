package property

type CreatePropertyRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	City         string   `json:"city" binding:"required"`
	Address      string   `json:"address"`
	NightlyPrice float64  `json:"nightly_price" binding:"required,gt=0"`
	Currency     string   `json:"currency"`
	Photos       []string `json:"photos"`
}

type UpdatePropertyRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	City         *string   `json:"city"`
	Address      *string   `json:"address"`
	NightlyPrice *float64  `json:"nightly_price"`
	Currency     *string   `json:"currency"`
	Photos       *[]string `json:"photos"`
}
