package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/uniaccru/promotion-system/internal/db"
	calibrationdomain "github.com/uniaccru/promotion-system/internal/domain/calibration"
	comparisondomain "github.com/uniaccru/promotion-system/internal/domain/comparison"
	"github.com/uniaccru/promotion-system/internal/domain/directory"
	"github.com/uniaccru/promotion-system/internal/platform/config"
)

const usage = `calctl - calibration inspector

Usage:
  calctl grades
  calctl calibrations <status>
  calctl ranking <calibrationID>
  calctl pending <calibrationID> <evaluatorID>
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	switch os.Args[1] {
	case "grades":
		err = showGrades(ctx, directory.NewStore(pool))
	case "calibrations":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(2)
		}
		err = showCalibrations(ctx, calibrationdomain.NewService(calibrationdomain.NewStore(pool)), os.Args[2])
	case "ranking":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(2)
		}
		err = showRanking(ctx, calibrationdomain.NewService(calibrationdomain.NewStore(pool)), os.Args[2])
	case "pending":
		if len(os.Args) < 4 {
			fmt.Print(usage)
			os.Exit(2)
		}
		err = showPending(ctx, comparisondomain.NewService(comparisondomain.NewStore(pool)), os.Args[2], os.Args[3])
	default:
		fmt.Print(usage)
		os.Exit(2)
	}

	if err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func showGrades(ctx context.Context, store *directory.Store) error {
	grades, err := store.ListGrades(ctx)
	if err != nil {
		return err
	}

	color.Cyan("Grades")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Description"})
	for _, grade := range grades {
		table.Append([]string{grade.ID, grade.Name, grade.Description})
	}
	table.Render()
	return nil
}

func showCalibrations(ctx context.Context, service *calibrationdomain.Service, status string) error {
	calibrations, err := service.ListByStatus(ctx, status)
	if err != nil {
		return err
	}

	color.Cyan("Calibrations (%s)", status)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Grade", "Created By", "Status", "Created"})
	for _, cal := range calibrations {
		table.Append([]string{cal.ID, cal.GradeID, cal.CreatedByID, string(cal.Status), cal.CreatedAt.Format("2006-01-02")})
	}
	table.Render()
	return nil
}

func showRanking(ctx context.Context, service *calibrationdomain.Service, calibrationID string) error {
	ranking, err := service.CandidateRanking(ctx, calibrationID)
	if err != nil {
		return err
	}

	color.Yellow("Ranking for calibration %s", calibrationID)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Candidate", "Wins", "Comparisons", "Win Rate"})
	for i, score := range ranking.Rankings {
		table.Append([]string{
			strconv.Itoa(i + 1),
			score.EmployeeName,
			strconv.Itoa(score.Wins),
			strconv.Itoa(score.TotalComparisons),
			fmt.Sprintf("%.2f", score.WinRate),
		})
	}
	table.Render()
	color.HiBlack("Ranking is advisory input to the HR decision.")
	return nil
}

func showPending(ctx context.Context, service *comparisondomain.Service, calibrationID, evaluatorID string) error {
	pending, err := service.PendingForEvaluator(ctx, calibrationID, evaluatorID)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		color.Green("No pending pairs: evaluator %s has judged every pair.", evaluatorID)
		return nil
	}

	color.Yellow("Pending pairs for evaluator %s", evaluatorID)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Candidate A", "Candidate B"})
	for _, pair := range pending {
		table.Append([]string{
			fmt.Sprintf("%s (%s)", pair.CandidateAName, pair.CandidateAID),
			fmt.Sprintf("%s (%s)", pair.CandidateBName, pair.CandidateBID),
		})
	}
	table.Render()
	return nil
}
