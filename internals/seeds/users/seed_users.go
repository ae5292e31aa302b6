package users

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	authHelper "attendku_backend/internals/features/users/auth/helper"
	"attendku_backend/internals/features/users/user/model"

	"gorm.io/gorm"
)

//go:embed data_users.json
var DefaultUsersJSON []byte

type UserSeed struct {
	UserName    string  `json:"user_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	Name        string  `json:"name"`
	StudentCode string  `json:"student_code"`
	TeacherCode string  `json:"teacher_code"`
	Subject     *string `json:"subject"`
}

// SeedUsersFromJSON: user + profil student/teacher. Username yang sudah ada dilewati.
func SeedUsersFromJSON(db *gorm.DB, data []byte) error {
	var inputs []UserSeed
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("decode seed users: %w", err)
	}

	for _, in := range inputs {
		var n int64
		if err := db.Model(&model.UserModel{}).Where("user_name = ?", in.UserName).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[SEED] user '%s' sudah ada, dilewati", in.UserName)
			continue
		}

		hashed, err := authHelper.HashPassword(in.Password)
		if err != nil {
			return fmt.Errorf("hash password %s: %w", in.UserName, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			u := model.UserModel{UserName: in.UserName, Email: in.Email, Password: hashed, Role: in.Role, IsActive: true}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			switch {
			case in.StudentCode != "":
				return tx.Create(&model.StudentModel{StudentCode: in.StudentCode, StudentName: in.Name, StudentUserID: &u.ID}).Error
			case in.TeacherCode != "":
				return tx.Create(&model.TeacherModel{TeacherCode: in.TeacherCode, TeacherName: in.Name, TeacherSubject: in.Subject, TeacherUserID: &u.ID}).Error
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", in.UserName, err)
		}
		log.Printf("[SEED] user '%s' (%s) dibuat", in.UserName, in.Role)
	}
	return nil
}
