package request

type CreateAuditoriumRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	RowCount int    `json:"row_count" validate:"required,gt=0,max=26"`
	ColCount int    `json:"col_count" validate:"required,gt=0,max=100"`
}

type UpdateAuditoriumRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}
