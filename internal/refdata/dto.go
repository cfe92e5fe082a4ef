package refdata

type AddReferenceDTO struct {
	Name string `json:"name"`
}
