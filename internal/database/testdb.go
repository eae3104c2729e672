package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/dineshsutihar/Hire3-sub000/internal/model"
	"github.com/dineshsutihar/Hire3-sub000/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & fixtures
var (
	// TestUserAlice has skills seeded for matcher tests.
	TestUserAlice m.User
	// TestUserBob has an empty skill list.
	TestUserBob m.User
	// TestUserCarol owns the seeded jobs.
	TestUserCarol m.User

	// TestSeedPassword is the plain password shared by all seeded users.
	TestSeedPassword = "SeedPass123!"

	// Seeded jobs, owned by Carol. Skill sets are chosen so that Alice
	// ({react, node}) overlaps job 2 twice, job 1 once and job 3 never.
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample users and jobs if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return loadTestData(db)
	}

	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := []m.User{
		{
			ID:            uuid.New(),
			Name:          "Alice Nguyen",
			Email:         "alice@example.com",
			Password:      hashedPwd,
			Skills:        pq.StringArray{"react", "node"},
			WalletAddress: "A1iceWa11etAddr1111111111111111111111111111",
		},
		{
			ID:       uuid.New(),
			Name:     "Bob Somsak",
			Email:    "bob@example.com",
			Password: hashedPwd,
			Skills:   pq.StringArray{},
		},
		{
			ID:       uuid.New(),
			Name:     "Carol Tan",
			Email:    "carol@example.com",
			Password: hashedPwd,
			Skills:   pq.StringArray{"hiring"},
		},
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	for _, u := range users {
		switch u.Email {
		case "alice@example.com":
			TestUserAlice = u
		case "bob@example.com":
			TestUserBob = u
		case "carol@example.com":
			TestUserCarol = u
		}
	}

	jobs := []m.Job{
		{
			UserID: TestUserCarol.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Frontend Engineer",
				Description: "Build component libraries.",
				CompanyName: "TechNova",
				Role:        "Engineer",
				Skills:      m.EncodeStringList([]string{"react"}),
				Tags:        m.EncodeStringList([]string{"frontend"}),
				Budget:      "2000 USD",
				WorkMode:    "remote",
				Location:    "Remote",
				Status:      m.JobStatusActive,
			},
		},
		{
			UserID: TestUserCarol.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "Fullstack Engineer",
				Description: "Ship features end to end.",
				CompanyName: "TechNova",
				Role:        "Engineer",
				Skills:      m.EncodeStringList([]string{"react", "node", "css"}),
				Tags:        m.EncodeStringList([]string{"fullstack"}),
				Budget:      "3000 USD",
				WorkMode:    "hybrid",
				Location:    "Bangkok",
				Status:      m.JobStatusActive,
			},
		},
		{
			UserID: TestUserCarol.ID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       "UI Designer",
				Description: "Own the design system.",
				CompanyName: "DataForge",
				Role:        "Designer",
				Skills:      m.EncodeStringList([]string{"css"}),
				Tags:        m.EncodeStringList([]string{"design"}),
				Budget:      "1500 USD",
				WorkMode:    "onsite",
				Location:    "Chiang Mai",
				Status:      m.JobStatusActive,
			},
		},
	}

	if err := db.Create(&jobs).Error; err != nil {
		return err
	}
	TestJob1 = jobs[0]
	TestJob2 = jobs[1]
	TestJob3 = jobs[2]

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("email IN ?", []string{
		"alice@example.com", "bob@example.com", "carol@example.com",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Email {
		case "alice@example.com":
			TestUserAlice = u
		case "bob@example.com":
			TestUserBob = u
		case "carol@example.com":
			TestUserCarol = u
		}
	}

	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}
