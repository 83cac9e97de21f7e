// Command cvprint prints a student's CV to the terminal in print order, or
// writes it as xlsx with -out.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/justsurfingit/Placement-Tracker/internal/config"
	"github.com/justsurfingit/Placement-Tracker/internal/database"
	"github.com/justsurfingit/Placement-Tracker/internal/export"
	"github.com/justsurfingit/Placement-Tracker/internal/resume"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
	"github.com/olekukonko/tablewriter"
)

func main() {
	id := flag.Uint("id", 0, "student id")
	out := flag.String("out", "", "write the CV as xlsx to this path instead of printing")
	flag.Parse()
	if *id == 0 {
		color.Red("usage: cvprint -id <student id> [-out cv.xlsx]")
		os.Exit(2)
	}

	cfg := config.Load()
	db := database.Connect(cfg)
	students := services.NewStudentService(db)
	rule := services.NewStatusRule(students)
	cv := services.NewCVService(students, services.NewTestService(db, rule), rule, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	doc, _, err := cv.Build(ctx, uint(*id))
	// Let a status transition triggered by the read finish before exiting.
	defer rule.Wait()
	if err != nil {
		color.Red("Error building CV: %v", err)
		os.Exit(1)
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			color.Red("Error opening file: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := export.WriteCV(f, *doc); err != nil {
			color.Red("Error writing CV: %v", err)
			os.Exit(1)
		}
		color.Green("CV written to %s", *out)
		return
	}

	for _, sec := range doc.Layout {
		printSection(sec, doc)
	}
}

func printSection(sec resume.Section, doc *resume.Document) {
	switch sec {
	case resume.SectionHeader:
		h := doc.Header
		color.Cyan("\n=== %s %s ===", h.Name, h.KanaName)
		birth, age := "", ""
		if h.Birth != nil {
			birth = fmt.Sprintf("%04d-%02d-%02d", h.Birth.Year, h.Birth.Month, h.Birth.Day)
		}
		if h.Age != nil {
			age = fmt.Sprint(*h.Age)
		}
		pairs([][]string{
			{"Date of birth", birth},
			{"Age", age},
			{"Gender", h.Gender},
			{"Nationality", h.Nationality},
			{"Languages", strings.Join(h.Languages, ", ")},
			{"Phone", h.Phone},
			{"Email", h.Email},
			{"Desired job", h.DesiredJobCategory},
		})
	case resume.SectionEducation:
		periods("Education", doc.Education)
	case resume.SectionWork:
		periods("Work experience", doc.Work)
	case resume.SectionPageBreak:
		fmt.Println(strings.Repeat("-", 60))
	case resume.SectionQualifications:
		color.Yellow("\nQualifications")
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Year", "Month", "Qualification"})
		for _, q := range doc.Qualifications {
			table.Append([]string{q.Display.Year, q.Display.Month, q.Name})
		}
		table.Render()
	case resume.SectionPhysical:
		color.Yellow("\nPhysical")
		pairs([][]string{{"Height", doc.Physical.Height}, {"Weight", doc.Physical.Weight}, {"Shoe size", doc.Physical.ShoeSize}})
	case resume.SectionPersonal:
		color.Yellow("\nPersonal")
		p := doc.Personal
		pairs([][]string{
			{"Self introduction", p.SelfIntroduction},
			{"Strengths", p.Strengths},
			{"Weaknesses", p.Weaknesses},
			{"Hobbies", p.Hobbies},
		})
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Relationship", "Name", "Age", "Occupation"})
		for _, m := range p.Family {
			age := ""
			if m.Age != nil {
				age = fmt.Sprint(*m.Age)
			}
			table.Append([]string{m.Relationship, m.Name, age, m.Occupation})
		}
		table.Render()
	}
}

func periods(title string, rows []resume.PeriodRow) {
	color.Yellow("\n%s", title)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Year", "Month", "Name", "Detail"})
	for _, r := range rows {
		table.Append([]string{r.Date.Year, r.Date.Month, r.Name, r.Detail})
	}
	table.Render()
}

func pairs(rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(true)
	table.AppendBulk(rows)
	table.Render()
}
