package daemon

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/mkeenan750/snapcourse/internal/auth"
	"github.com/mkeenan750/snapcourse/internal/config"
	controller "github.com/mkeenan750/snapcourse/internal/db/controller/course"
	"github.com/mkeenan750/snapcourse/internal/db/models"
)

// Seeded roles.
const (
	RoleAdmin          = "admin"
	RoleEditingTeacher = "editingteacher"
	RoleStudent        = "student"

	defaultAdminUser     = "admin"
	defaultAdminPassword = "changeme"
)

var courseCapabilities = []string{
	auth.CapView,
	auth.CapViewHiddenSections,
	auth.CapSectionVisibility,
	auth.CapMoveSections,
	auth.CapUpdate,
	auth.CapManageActivities,
}

// seed creates the permissions and roles, and on an empty database the
// admin account and a demo course.
func seed(cfg *config.Config, db *gorm.DB) error {
	authService := auth.NewService(db)

	if err := authService.EnsurePermissions(); err != nil {
		return err
	}

	admin, err := authService.GrantRole(RoleAdmin, "Site administrator",
		append([]string{auth.CapAdminSettings}, courseCapabilities...)...)
	if err != nil {
		return err
	}

	teacher, err := authService.GrantRole(RoleEditingTeacher, "Teacher", courseCapabilities...)
	if err != nil {
		return err
	}

	student, err := authService.GrantRole(RoleStudent, "Student", auth.CapView)
	if err != nil {
		return err
	}

	// Seed initial data if user table is empty
	var count int64
	if err = db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		local := auth.NewLocalProvider(db)

		if _, err = local.CreateUser(defaultAdminUser, "admin@localhost", defaultAdminPassword,
			"Site", "Admin", admin.ID); err != nil {
			return err
		}

		log.Warn().Str("username", defaultAdminUser).Msg("created default admin account, change its password")

		if cfg.DevMode {
			if _, err = local.CreateUser("teacher", "teacher@localhost", defaultAdminPassword,
				"Tess", "Teacher", teacher.ID); err != nil {
				return err
			}

			if _, err = local.CreateUser("student", "student@localhost", defaultAdminPassword,
				"Sam", "Student", student.ID); err != nil {
				return err
			}
		}
	}

	if err = db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return seedCourse(db, time.Now())
	}

	return nil
}

// seedCourse creates a topics course showing a named section, a restricted
// one, a hidden one and some activities.
func seedCourse(db *gorm.DB, now time.Time) error {
	c := &models.Course{
		ShortName:   "demo",
		FullName:    "Demo course",
		Format:      "topics",
		NumSections: 4, //nolint:mnd
		StartDate:   now,
	}

	if err := controller.Create(db, c); err != nil {
		return err
	}

	intro := "Getting started"
	if err := controller.UpdateSection(db, c.ID, 1, &intro,
		"<p>Read the course guide and introduce yourself in the forum.</p>"); err != nil {
		return err
	}

	from := now.AddDate(0, 0, 14).Unix() //nolint:mnd
	if err := controller.SetAvailability(db, c.ID, 3, //nolint:mnd
		fmt.Sprintf(`{"op":"&","show":true,"c":[{"type":"date","d":">=","t":%d}]}`, from)); err != nil {
		return err
	}

	if err := controller.SetSectionVisibility(db, c.ID, 4, false); err != nil { //nolint:mnd
		return err
	}

	modules := []models.Module{
		{SectionNumber: 0, Name: "Announcements", ModName: "forum"},
		{SectionNumber: 1, Name: "Course guide", ModName: "page"},
		{SectionNumber: 1, Name: "Introductions", ModName: "forum"},
		{SectionNumber: 2, Name: "First assignment", ModName: "assign"},
		{SectionNumber: 3, Name: "Midterm quiz", ModName: "quiz"}, //nolint:mnd
	}

	for i := range modules {
		modules[i].CourseID = c.ID
		modules[i].Visible = true

		if err := controller.AddModule(db, &modules[i]); err != nil {
			return err
		}
	}

	log.Info().Uint64("course", c.ID).Msg("created demo course")

	return nil
}
