package jobcategory

type CreateCategoryRequest struct {
	Name string `json:"name"`
}
