package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nattapong/sarakham-jobs/internal/config"
	"github.com/nattapong/sarakham-jobs/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo accounts, companies and jobs",
	Long: `Create a demo admin, a demo employer with approved companies, a demo
applicant, and a handful of approved job postings around Maha Sarakham.
Safe to run more than once; seeding is skipped when the demo admin exists.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedAccount struct {
	email    string
	password string
	name     string
	role     db.Role
	phone    string
	address  string
}

var seedAccounts = []seedAccount{
	{
		email:    "admin@sarakham.jobs",
		password: "admin1234",
		name:     "ผู้ดูแลระบบ",
		role:     db.RoleAdmin,
	},
	{
		email:    "employer@sarakham.jobs",
		password: "employer1234",
		name:     "สมศักดิ์ ใจดี",
		role:     db.RoleEmployer,
		phone:    "043-711-234",
		address:  "ถนนนครสวรรค์ ตำบลตลาด อำเภอเมืองมหาสารคาม",
	},
	{
		email:    "applicant@sarakham.jobs",
		password: "applicant1234",
		name:     "สมชาย รักเรียน",
		role:     db.RoleApplicant,
		phone:    "089-123-4567",
		address:  "หอพักใกล้ มมส. ตำบลขามเรียง อำเภอกันทรวิชัย",
	},
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	exists, err := database.AuthEmailExists(ctx, seedAccounts[0].email)
	if err != nil {
		return err
	}
	if exists {
		fmt.Println("Demo data already present, nothing to do.")
		return nil
	}

	users := make(map[db.Role]uuid.UUID, len(seedAccounts))
	for _, account := range seedAccounts {
		id, err := seedUser(ctx, database, passwords, account)
		if err != nil {
			return err
		}
		users[account.role] = id
		fmt.Printf("Created %s account %s\n", account.role, account.email)
	}

	companyIDs, err := seedCompanies(ctx, database, users[db.RoleEmployer])
	if err != nil {
		return err
	}

	jobs, err := seedJobs(ctx, database, companyIDs)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d companies and %d jobs.\n", len(companyIDs), jobs)
	return nil
}

func seedUser(ctx context.Context, database *db.DB, passwords *config.PasswordConfig, account seedAccount) (uuid.UUID, error) {
	hash, err := passwords.HashPassword(account.password)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := database.CreateAuthUser(ctx, account.email, hash)
	if err != nil {
		return uuid.Nil, err
	}

	profile := &db.Profile{
		ID:      id,
		Name:    account.name,
		Email:   account.email,
		Role:    account.role,
		Phone:   account.phone,
		Address: account.address,
	}
	if err := database.CreateProfile(ctx, profile); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func seedCompanies(ctx context.Context, database *db.DB, ownerID uuid.UUID) ([]uuid.UUID, error) {
	companies := []db.Company{
		{
			Name:        "ร้านกาแฟตักสิลา",
			Description: "ร้านกาแฟและเบเกอรี่ใกล้มหาวิทยาลัยมหาสารคาม",
			Address:     "ตำบลขามเรียง อำเภอกันทรวิชัย จังหวัดมหาสารคาม",
			Phone:       "043-754-321",
			Email:       "taksila.cafe@example.com",
			OwnerID:     ownerID,
		},
		{
			Name:        "เสริมไทยคอมเพล็กซ์",
			Description: "ห้างสรรพสินค้าใจกลางเมืองมหาสารคาม",
			Address:     "ถนนนครสวรรค์ อำเภอเมืองมหาสารคาม จังหวัดมหาสารคาม",
			Phone:       "043-970-888",
			Email:       "hr@sermthai.example.com",
			OwnerID:     ownerID,
		},
		{
			Name:        "ฟาร์มผักอินทรีย์บรบือ",
			Description: "ฟาร์มผักปลอดสารพิษส่งตลาดสดและโรงแรมในจังหวัด",
			Address:     "อำเภอบรบือ จังหวัดมหาสารคาม",
			Phone:       "086-555-1212",
			Email:       "borabue.farm@example.com",
			OwnerID:     ownerID,
		},
	}

	ids := make([]uuid.UUID, 0, len(companies))
	for i := range companies {
		id, err := database.CreateCompany(ctx, &companies[i])
		if err != nil {
			return nil, err
		}
		if err := database.ApproveCompany(ctx, id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedJobs(ctx context.Context, database *db.DB, companyIDs []uuid.UUID) (int, error) {
	deadline := time.Now().AddDate(0, 1, 0)
	rate45 := 45.0
	rate50 := 50.0
	rate40 := 40.0
	cap3 := 3
	cap10 := 10

	jobs := []db.Job{
		{
			Title:               "พนักงานชงกาแฟ (Part-time)",
			Description:         "ชงกาแฟ รับออเดอร์ และดูแลความสะอาดหน้าร้าน ช่วงเย็นวันจันทร์-ศุกร์",
			Requirements:        "อายุ 18 ปีขึ้นไป ขยัน ตรงต่อเวลา ไม่จำเป็นต้องมีประสบการณ์",
			Salary:              "45 บาท/ชั่วโมง",
			SalaryPerHour:       &rate45,
			WorkingHours:        "16:00 - 21:00 น.",
			Location:            "ตำบลขามเรียง อำเภอกันทรวิชัย",
			District:            "กันทรวิชัย",
			CompanyID:           companyIDs[0],
			CompanyName:         "ร้านกาแฟตักสิลา",
			ApplicationDeadline: &deadline,
			MaxApplicants:       &cap3,
			ContactPerson:       "คุณสมศักดิ์",
		},
		{
			Title:               "พนักงานจัดเรียงสินค้า",
			Description:         "จัดเรียงสินค้าและเติมสต๊อกในช่วงวันหยุดสุดสัปดาห์",
			Requirements:        "นักศึกษา หรือผู้ที่ว่างช่วงเสาร์-อาทิตย์",
			Salary:              "50 บาท/ชั่วโมง",
			SalaryPerHour:       &rate50,
			WorkingHours:        "09:00 - 18:00 น. (เสาร์-อาทิตย์)",
			Location:            "เสริมไทยคอมเพล็กซ์ อำเภอเมืองมหาสารคาม",
			District:            "เมืองมหาสารคาม",
			CompanyID:           companyIDs[1],
			CompanyName:         "เสริมไทยคอมเพล็กซ์",
			ApplicationDeadline: &deadline,
			MaxApplicants:       &cap10,
			ContactPerson:       "ฝ่ายบุคคล",
		},
		{
			Title:         "ผู้ช่วยเก็บเกี่ยวผัก",
			Description:   "ช่วยเก็บเกี่ยวและแพ็คผักส่งตลาดตอนเช้า มีรถรับส่งจากตัวอำเภอ",
			Requirements:  "สุขภาพแข็งแรง ตื่นเช้าได้",
			Salary:        "40 บาท/ชั่วโมง",
			SalaryPerHour: &rate40,
			WorkingHours:  "05:00 - 10:00 น.",
			Location:      "อำเภอบรบือ",
			District:      "บรบือ",
			CompanyID:     companyIDs[2],
			CompanyName:   "ฟาร์มผักอินทรีย์บรบือ",
			ContactPerson: "คุณประยูร",
		},
		{
			Title:         "พนักงานเสิร์ฟงานอีเวนต์",
			Description:   "เสิร์ฟอาหารและเครื่องดื่มในงานเลี้ยงของห้าง จ่ายรายวัน",
			Requirements:  "บุคลิกดี ยิ้มแย้ม",
			Salary:        "350 บาท/วัน",
			WorkingHours:  "17:00 - 22:00 น.",
			Location:      "เสริมไทยคอมเพล็กซ์ อำเภอเมืองมหาสารคาม",
			District:      "เมืองมหาสารคาม",
			CompanyID:     companyIDs[1],
			CompanyName:   "เสริมไทยคอมเพล็กซ์",
			ContactPerson: "ฝ่ายบุคคล",
		},
	}

	for i := range jobs {
		id, err := database.CreateJob(ctx, &jobs[i])
		if err != nil {
			return 0, err
		}
		if err := database.ApproveJob(ctx, id); err != nil {
			return 0, err
		}
	}
	return len(jobs), nil
}
