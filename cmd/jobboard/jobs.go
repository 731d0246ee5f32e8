package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nattapong/sarakham-jobs/internal/client"
	"github.com/nattapong/sarakham-jobs/internal/listing"
)

var (
	jobsSearch   string
	jobsDistrict string
	jobsSort     string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse the public job board",
	RunE:  runJobs,
}

var districtsCmd = &cobra.Command{
	Use:   "districts",
	Short: "List the district filter options",
	RunE:  runDistricts,
}

func init() {
	jobsCmd.Flags().StringVar(&jobsSearch, "search", "", "Filter by title, company or location")
	jobsCmd.Flags().StringVar(&jobsDistrict, "district", "", "Filter by district name")
	jobsCmd.Flags().StringVar(&jobsSort, "sort", "", "Sort order: newest, oldest, salary_high, salary_low, deadline_soonest")
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(districtsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	if jobsSort != "" && !listing.Sort(jobsSort).Valid() {
		return fmt.Errorf("unknown sort order: %s", jobsSort)
	}

	_, api, err := newSession()
	if err != nil {
		return err
	}

	jobs, err := api.Jobs(cmd.Context(), client.JobQuery{
		Search:   jobsSearch,
		District: jobsDistrict,
		Sort:     jobsSort,
	})
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Println("No open jobs match.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCOMPANY\tLOCATION\tSALARY\tDEADLINE")
	for _, job := range jobs {
		deadline := "-"
		if job.ApplicationDeadline != nil {
			deadline = job.ApplicationDeadline.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			job.Title, job.CompanyName, job.Location, job.Salary, deadline)
	}
	return w.Flush()
}

func runDistricts(cmd *cobra.Command, _ []string) error {
	_, api, err := newSession()
	if err != nil {
		return err
	}

	districts, err := api.Districts(cmd.Context())
	if err != nil {
		return err
	}

	for _, district := range districts {
		fmt.Println(district)
	}
	return nil
}
