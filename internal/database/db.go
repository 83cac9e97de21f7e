package database

import (
	"fmt"
	"log"
	"time"

	"github.com/justsurfingit/Placement-Tracker/internal/config"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) *gorm.DB {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connection established")

	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(60 * time.Second)
	}

	log.Println("Running Migrations...")
	if err := Migrate(DB, cfg.RealtimeChannel); err != nil {
		log.Fatal("Migration failed:", err)
	}
	return DB
}

// Migrate creates the tables and the change-notification trigger on students.
func Migrate(db *gorm.DB, channel string) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Student{},
		&models.FamilyMember{},
		&models.Education{},
		&models.WorkExperience{},
		&models.Certificate{},
		&models.Resume{},
		&models.Test{},
		&models.StudentEvent{},
		&models.Client{},
		&models.Job{},
		&models.Interview{},
		&models.ProcessedEmail{},
		&models.Mailbox{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	notify := fmt.Sprintf(`
CREATE OR REPLACE FUNCTION notify_students_changed() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('%s', TG_OP);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`, channel)
	if err := db.Exec(notify).Error; err != nil {
		return fmt.Errorf("notify function: %w", err)
	}

	// Child tables notify too: a changed education row changes the student.
	for _, table := range []string{"students", "family_members", "educations", "work_experiences", "certificates", "resumes", "tests"} {
		stmts := []string{
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s_changed ON %s`, table, table),
			fmt.Sprintf(`CREATE TRIGGER %s_changed AFTER INSERT OR UPDATE OR DELETE ON %s
FOR EACH STATEMENT EXECUTE FUNCTION notify_students_changed()`, table, table),
		}
		for _, s := range stmts {
			if err := db.Exec(s).Error; err != nil {
				return fmt.Errorf("trigger on %s: %w", table, err)
			}
		}
	}
	return ensureEligibleStudents(db)
}

// ensureEligibleStudents installs a default matcher only when the backend
// does not already provide one.
func ensureEligibleStudents(db *gorm.DB) error {
	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = 'eligible_students')`).Scan(&exists).Error; err != nil {
		return fmt.Errorf("lookup eligible_students: %w", err)
	}
	if exists {
		return nil
	}
	log.Println("[migrate] installing default eligible_students(job_id)")
	return db.Exec(`
CREATE FUNCTION eligible_students(p_job_id bigint)
RETURNS TABLE (student_id bigint, first_name text, last_name text, status text) AS $$
	SELECT s.id::bigint, s.first_name::text, s.last_name::text, s.status::text
	FROM students s
	JOIN resumes r ON r.student_id = s.id
	JOIN jobs j ON j.id = p_job_id
	WHERE s.status = 'interview_eligible'
	  AND (j.category = '' OR r.desired_job_category = j.category)
	ORDER BY s.id
$$ LANGUAGE sql STABLE`).Error
}
