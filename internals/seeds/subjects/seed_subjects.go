package subjects

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	subjectModel "attendku_backend/internals/features/school/subjects/model"
	userModel "attendku_backend/internals/features/users/user/model"

	"gorm.io/gorm"
)

//go:embed data_subjects.json
var DefaultSubjectsJSON []byte

type SubjectSeed struct {
	TeacherUserName string  `json:"teacher_user_name"`
	Name            string  `json:"name"`
	Code            string  `json:"code"`
	AcademicYear    string  `json:"academic_year"`
	Division        string  `json:"division"`
	Credits         int     `json:"credits"`
	Description     *string `json:"description"`
	Semester        *string `json:"semester"`
	Department      *string `json:"department"`
}

// SeedSubjectsFromJSON: subject contoh; dilewati kalau kode sudah ada atau teacher belum ada.
func SeedSubjectsFromJSON(db *gorm.DB, data []byte) error {
	var inputs []SubjectSeed
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("decode seed subjects: %w", err)
	}

	for _, in := range inputs {
		var n int64
		if err := db.Model(&subjectModel.SubjectModel{}).Where("subject_code = ?", in.Code).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}

		var owner userModel.UserModel
		if err := db.Where("user_name = ?", in.TeacherUserName).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[SEED] teacher '%s' tidak ada, subject %s dilewati", in.TeacherUserName, in.Code)
				continue
			}
			return err
		}

		code := in.Code
		row := subjectModel.SubjectModel{
			SubjectTeacherUserID: owner.ID,
			SubjectName:          in.Name,
			SubjectCode:          &code,
			SubjectAcademicYear:  in.AcademicYear,
			SubjectDivision:      in.Division,
			SubjectCredits:       in.Credits,
			SubjectDescription:   in.Description,
			SubjectSemester:      in.Semester,
			SubjectDepartment:    in.Department,
		}
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("seed subject %s: %w", in.Code, err)
		}
		log.Printf("[SEED] subject %s dibuat", in.Code)
	}
	return nil
}
