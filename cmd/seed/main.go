package main

import (
	"context"
	"log"
	"os"

	"compliance-screening-be/internal/entity"
	"compliance-screening-be/internal/model"
	"compliance-screening-be/internal/repository/implementation"
	"compliance-screening-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	color.Cyan("Seeding regulation corpus...")
	if err := seedRegulations(ctx, db); err != nil {
		color.Red("Error: Failed to seed regulations: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding demo organization...")
	if err := seedDemoOrganization(db); err != nil {
		color.Red("Error: Failed to seed demo organization: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Seeding completed")
}

func seedRegulations(ctx context.Context, db *gorm.DB) error {
	repo := implementation.NewRegulationRepository(db)

	regulations := []*entity.Regulation{
		{
			Id: "ukpga-1974-37", Name: "Health and Safety at Work etc. Act 1974",
			Title:          "An Act to make further provision for securing the health, safety and welfare of persons at work.",
			Classification: "Health and Safety", GeoExtent: "Great Britain", Status: "in_force", Year: 1974,
			PrimaryFunction: "duty_creating",
			Description:     "General duties on employers to ensure the health, safety and welfare at work of all their employees.",
			DutyHolders:     []string{"employers", "self-employed"},
		},
		{
			Id: "ukpga-2006-46", Name: "Companies Act 2006",
			Title:          "An Act to reform company law and restate the greater part of the enactments relating to companies.",
			Classification: "Corporate Governance", GeoExtent: "United Kingdom", Status: "in_force", Year: 2006,
			PrimaryFunction: "duty_creating",
			Description:     "Filing, reporting and directors' duties for registered companies.",
			DutyHolders:     []string{"directors", "company secretaries"},
		},
		{
			Id: "ukpga-2018-12", Name: "Data Protection Act 2018",
			Title:          "An Act to make provision for the regulation of the processing of information relating to individuals.",
			Classification: "Data Protection", GeoExtent: "United Kingdom", Status: "in_force", Year: 2018,
			PrimaryFunction: "duty_creating",
			Description:     "Obligations on controllers and processors of personal data.",
			DutyHolders:     []string{"data controllers", "data processors"},
		},
		{
			Id: "ukpga-2010-15", Name: "Equality Act 2010",
			Title:          "An Act to reform and harmonise equality law.",
			Classification: "Employment", GeoExtent: "Great Britain", Status: "in_force", Year: 2010,
			PrimaryFunction: "duty_creating",
			Description:     "Prohibits discrimination in employment and the provision of services.",
			DutyHolders:     []string{"employers", "service providers"},
		},
		{
			Id: "uksi-2015-51", Name: "Construction (Design and Management) Regulations 2015",
			Title:          "Regulations imposing duties in relation to construction projects.",
			Classification: "Construction", GeoExtent: "Great Britain", Status: "in_force", Year: 2015,
			PrimaryFunction: "duty_creating",
			Description:     "Duties on clients, designers and contractors for managing construction projects.",
			DutyHolders:     []string{"clients", "principal designers", "principal contractors", "small employers"},
		},
		{
			Id: "asp-2014-16", Name: "Procurement Reform (Scotland) Act 2014",
			Title:          "An Act of the Scottish Parliament to make provision about public procurement.",
			Classification: "Construction", GeoExtent: "Scotland", Status: "in_force", Year: 2014,
			PrimaryFunction: "duty_creating",
			Description:     "Sustainable procurement duties for regulated procurement in Scotland.",
			DutyHolders:     []string{"contracting authorities", "contractors"},
		},
		{
			Id: "uksi-1998-2306", Name: "Provision and Use of Work Equipment Regulations 1998",
			Title:          "Regulations about the provision and use of work equipment.",
			Classification: "Health and Safety", GeoExtent: "Great Britain", Status: "in_force", Year: 1998,
			PrimaryFunction: "duty_creating",
			Description:     "Suitability, maintenance and inspection duties for work equipment.",
			DutyHolders:     []string{"employers", "medium_employers"},
		},
		{
			Id: "ukpga-2015-30", Name: "Modern Slavery Act 2015",
			Title:          "An Act to make provision about slavery, servitude and forced or compulsory labour.",
			Classification: "Corporate Governance", GeoExtent: "United Kingdom", Status: "in_force", Year: 2015,
			PrimaryFunction: "duty_creating",
			Description:     "Transparency in supply chains statements for large commercial organisations.",
			DutyHolders:     []string{"large_employers", "commercial organisations"},
		},
		{
			Id: "ukpga-2008-27", Name: "Climate Change Act 2008",
			Title:          "An Act to set a target for the reduction of targeted greenhouse gas emissions.",
			Classification: "Environmental", GeoExtent: "United Kingdom", Status: "in_force", Year: 2008,
			PrimaryFunction: "duty_creating",
			Description:     "Carbon reporting duties for quoted and large companies.",
			DutyHolders:     []string{"large_employers"},
		},
		{
			Id: "ukpga-2000-8", Name: "Financial Services and Markets Act 2000",
			Title:          "An Act to make provision about the regulation of financial services and markets.",
			Classification: "Financial Services", GeoExtent: "United Kingdom", Status: "in_force", Year: 2000,
			PrimaryFunction: "duty_creating",
			Description:     "Authorisation and conduct requirements for regulated financial activity.",
			DutyHolders:     []string{"authorised persons"},
		},
		// Non-duty-creating instruments; present so the duty-creating
		// predicate has something to exclude.
		{
			Id: "ukpga-1978-30", Name: "Interpretation Act 1978",
			Title:          "An Act to consolidate enactments relating to the construction of Acts of Parliament.",
			Classification: "General", GeoExtent: "United Kingdom", Status: "in_force", Year: 1978,
			PrimaryFunction: "defining",
			Description:     "Rules for the interpretation of legislation.",
		},
		{
			Id: "uksi-2019-419", Name: "Data Protection (Amendment) Regulations 2019",
			Title:          "Regulations amending data protection legislation on EU exit.",
			Classification: "Data Protection", GeoExtent: "United Kingdom", Status: "in_force", Year: 2019,
			PrimaryFunction: "amending",
			Description:     "Amendments to retained EU data protection law.",
		},
	}

	if err := repo.CreateBulk(ctx, regulations); err != nil {
		return err
	}
	color.Green("  Seeded %d regulations", len(regulations))
	return nil
}

func seedDemoOrganization(db *gorm.DB) error {
	orgId := uuid.MustParse("7d9f3f0a-5b2e-4a7c-9c1d-8e6f4a2b3c4d")
	employees := 120
	turnover := 15_000_000.0
	established := 2004
	handlesData := true

	org := &model.Organization{
		Id:                  orgId,
		Name:                "Granite Ridge Construction Ltd",
		ContactEmail:        "compliance@graniteridge.example",
		IndustrySector:      "construction",
		HeadquartersRegion:  "Scotland",
		EntityType:          "limited_company",
		EmployeeCount:       &employees,
		AnnualTurnover:      &turnover,
		OperationalRegions:  datatypes.JSONSlice[string]{"Scotland", "England"},
		BusinessActivities:  datatypes.JSONSlice[string]{"commercial construction", "civil engineering"},
		YearEstablished:     &established,
		HandlesPersonalData: &handlesData,
		RiskProfile:         "medium",
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(org).Error; err != nil {
		return err
	}

	hqEmployees := 80
	siteEmployees := 40
	locations := []*model.Location{
		{
			Id:             uuid.MustParse("3f1a9c2b-7d4e-4f6a-8b1c-2d3e4f5a6b7c"),
			OrganizationId: orgId,
			Name:           "Aberdeen Head Office",
			Region:         "Scotland",
			EmployeeCount:  &hqEmployees,
			Activities:     datatypes.JSONSlice[string]{"commercial construction"},
			Status:         "active",
			IsPrimary:      true,
		},
		{
			Id:             uuid.MustParse("9b8c7d6e-5f4a-4b3c-2d1e-0f9a8b7c6d5e"),
			OrganizationId: orgId,
			Name:           "Leeds Regional Depot",
			Region:         "England",
			EmployeeCount:  &siteEmployees,
			Activities:     datatypes.JSONSlice[string]{"civil engineering"},
			Status:         "active",
		},
	}

	for _, loc := range locations {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(loc).Error; err != nil {
			return err
		}
	}

	color.Green("  Seeded organization %s with %d locations", org.Name, len(locations))
	return nil
}
