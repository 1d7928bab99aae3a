package product

type CreateProductDTO struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price" binding:"min=0"`
	Currency    string  `json:"currency"`
	CategoryID  *string `json:"categoryId"`
}

type UpdateProductDTO struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Price       *float64 `json:"price"`
	Currency    *string  `json:"currency"`

	// CategoryID set to an empty string detaches the category.
	CategoryID *string `json:"categoryId"`
}

type ListQuery struct {
	CategoryID string
	Search     string
}
