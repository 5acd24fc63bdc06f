package entity

type Bucket string

const (
	Image Bucket = "images"
)

type File struct {
	Base
	Mime      string
	Name      string
	CreatedBy string
	User      User `gorm:"foreignKey:CreatedBy"`
	Url       string
}
