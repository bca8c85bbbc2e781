package models

import (
	"time"

	"gorm.io/gorm"
)

type TypeSession struct {
	Base
	Name string `json:"name" gorm:"not null"`
}

func (TypeSession) TableName() string { return "type_session" }

func (t *TypeSession) Validate() error {
	if t.Name == "" {
		return required("type_session", "name")
	}
	return nil
}

// Session groups the files and marks produced under one directory.
// Date is stamped on every save.
type Session struct {
	Base
	Name            string    `json:"name" gorm:"not null"`
	PathToDirectory string    `json:"path_to_directory" gorm:"not null"`
	TypeSessionID   *uint     `json:"type_session_id"`
	Date            time.Time `json:"date" gorm:"not null"`

	TypeSession *TypeSession `json:"-" gorm:"foreignKey:TypeSessionID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string { return "session" }

func (s *Session) Validate() error {
	if s.Name == "" {
		return required("session", "name")
	}
	if s.PathToDirectory == "" {
		return required("session", "path_to_directory")
	}
	return nil
}

func (s *Session) BeforeSave(tx *gorm.DB) error {
	s.Date = now()
	return nil
}

type File struct {
	Base
	Name          string `json:"name" gorm:"not null"`
	PathToFile    string `json:"path_to_file" gorm:"not null"`
	FileExtension string `json:"file_extension"`
	SessionID     *uint  `json:"session_id" gorm:"index"`

	Session *Session `json:"-" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

func (File) TableName() string { return "file" }

func (f *File) Validate() error {
	if f.Name == "" {
		return required("file", "name")
	}
	if f.PathToFile == "" {
		return required("file", "path_to_file")
	}
	return nil
}
