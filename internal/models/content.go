package models

import "time"

// HomeBlock is a named section of the homepage. Names are stored lower-case.
type HomeBlock struct {
	ID        string    `gorm:"primaryKey;size:24" json:"_id"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageLink string    `gorm:"size:512" json:"image_link"`
	CreatedAt time.Time `json:"created_at"`
}

func (HomeBlock) TableName() string {
	return "home_blocks"
}

type Blog struct {
	ID        string    `gorm:"primaryKey;size:24" json:"_id"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	BlogName  string    `gorm:"size:255;not null" json:"blog_name"`
	Link      string    `gorm:"size:512" json:"link"`
	Content   string    `gorm:"type:text" json:"content"`
	Overview  string    `gorm:"type:text" json:"overview"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Blog) TableName() string {
	return "blogs"
}

// GalleryImage is an event photo; Link points at the uploaded asset.
type GalleryImage struct {
	ID          string    `gorm:"primaryKey;size:24" json:"_id"`
	EventName   string    `gorm:"size:255;not null" json:"event_name"`
	ImageID     string    `gorm:"size:100" json:"image_id"`
	Date        string    `gorm:"size:50" json:"date"`
	Description string    `gorm:"type:text" json:"description"`
	Link        string    `gorm:"size:512" json:"link"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}

type Publication struct {
	ID              string    `gorm:"primaryKey;size:24" json:"_id"`
	PublicationName string    `gorm:"size:255;not null" json:"publication_name"`
	PublicationType string    `gorm:"size:100" json:"publication_type"`
	Description     string    `gorm:"type:text" json:"description"`
	PublicationLink string    `gorm:"size:512" json:"publication_link"`
	CoverImageLink  string    `gorm:"size:512" json:"cover_image_link"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

func (Publication) TableName() string {
	return "publications"
}

type Banner struct {
	ID         string    `gorm:"primaryKey;size:24" json:"_id"`
	BannerID   string    `gorm:"size:100" json:"banner_id"`
	BannerLink string    `gorm:"size:512" json:"banner_link"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Banner) TableName() string {
	return "banners"
}

// FooterLink maps an application name (instagram, linkedin, ...) to its URL.
type FooterLink struct {
	ID        string    `gorm:"primaryKey;size:24" json:"_id"`
	AppName   string    `gorm:"uniqueIndex;not null;size:100" json:"app_name"`
	AppLink   string    `gorm:"size:512" json:"app_link"`
	CreatedAt time.Time `json:"created_at"`
}

func (FooterLink) TableName() string {
	return "footer_links"
}

// Subscriber is an address on the mailing list.
type Subscriber struct {
	ID        string    `gorm:"primaryKey;size:24" json:"_id"`
	MailID    string    `gorm:"uniqueIndex;not null;size:255" json:"mail_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&AuditLog{},
		&HomeBlock{},
		&Blog{},
		&GalleryImage{},
		&Publication{},
		&Banner{},
		&FooterLink{},
		&Subscriber{},
	}
}
