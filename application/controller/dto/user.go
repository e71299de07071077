package dto

type EnrollFaceDTO struct {
	Images []string `json:"images" validate:"required,min=3,max=10,dive,face_image"`
}

type ValidateFaceSampleDTO struct {
	Image string `json:"image" validate:"required,face_image"`
}
