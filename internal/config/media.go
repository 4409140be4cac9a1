package config

import "time"

// Media holds the image hosting (Cloudinary) settings.
type Media struct {
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME,required"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY,required"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET,required"`

	Folder        string        `env:"MEDIA_FOLDER" envDefault:"produtos"`
	UploadTimeout time.Duration `env:"MEDIA_UPLOAD_TIMEOUT" envDefault:"30s"`
}
