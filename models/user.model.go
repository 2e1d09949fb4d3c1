package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage     string `gorm:"default:''"`
	Name             string `gorm:"default:''"`
	Email            string `gorm:"unique;not null"`
	Mobile           string `gorm:"default:''"`
	Role             string `gorm:"default:'VENDOR'"` // VENDOR, DOCTOR, ADMIN, SUPER-ADMIN
	Password         string `gorm:"not null"`
	ClinicName       string
	Address          string
	City             string
	State            string
	PinCode          string
	IsMobileVerified bool       `gorm:"default:false"`
	IsEmailVerified  bool       `gorm:"default:false"`
	LastLogin        time.Time  `gorm:"default:NULL"`
	IsBlocked        bool       `gorm:"default:false"`
	BlockedUntil     *time.Time `json:"blocked_until"`
	IsDeleted        bool       `gorm:"default:false"`
}
