package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/justsurfingit/Placement-Tracker/internal/resume"
	"github.com/xuri/excelize/v2"
)

const SheetName = "CV"

// sheet tracks the next free row while sections are written top to bottom.
type sheet struct {
	f     *excelize.File
	row   int
	title int
	label int
}

// BuildCV lays the document out on a single sheet in resume.Layout order.
// The page_break section becomes a printed page break.
func BuildCV(doc resume.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, err
	}

	title, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	label, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	s := &sheet{f: f, row: 1, title: title, label: label}
	for _, sec := range doc.Layout {
		switch sec {
		case resume.SectionHeader:
			err = s.header(doc.Header)
		case resume.SectionEducation:
			err = s.periods("学歴 Education", doc.Education)
		case resume.SectionWork:
			err = s.periods("職歴 Work experience", doc.Work)
		case resume.SectionPageBreak:
			err = f.InsertPageBreak(SheetName, cell("A", s.row))
		case resume.SectionQualifications:
			err = s.qualifications(doc.Qualifications)
		case resume.SectionPhysical:
			err = s.physical(doc.Physical)
		case resume.SectionPersonal:
			err = s.personal(doc.Personal)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("section %s: %w", sec, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 22)
	_ = f.SetColWidth(SheetName, "B", "D", 30)
	return f, nil
}

// WriteCV streams the workbook as xlsx.
func WriteCV(w io.Writer, doc resume.Document) error {
	f, err := BuildCV(doc)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}

func (s *sheet) heading(text string) error {
	a, d := cell("A", s.row), cell("D", s.row)
	if err := s.f.SetCellValue(SheetName, a, text); err != nil {
		return err
	}
	if err := s.f.SetCellStyle(SheetName, a, d, s.label); err != nil {
		return err
	}
	s.row++
	return nil
}

func (s *sheet) pair(label string, value interface{}) error {
	if err := s.f.SetCellValue(SheetName, cell("A", s.row), label); err != nil {
		return err
	}
	if err := s.f.SetCellValue(SheetName, cell("B", s.row), value); err != nil {
		return err
	}
	s.row++
	return nil
}

func (s *sheet) values(vals ...interface{}) error {
	if err := s.f.SetSheetRow(SheetName, cell("A", s.row), &vals); err != nil {
		return err
	}
	s.row++
	return nil
}

func (s *sheet) header(h resume.Header) error {
	if err := s.f.SetCellValue(SheetName, "A1", "履歴書"); err != nil {
		return err
	}
	if err := s.f.MergeCell(SheetName, "A1", "D1"); err != nil {
		return err
	}
	if err := s.f.SetCellStyle(SheetName, "A1", "D1", s.title); err != nil {
		return err
	}
	s.row = 3

	birth, age := "", ""
	if h.Birth != nil {
		birth = fmt.Sprintf("%d年%d月%d日", h.Birth.Year, h.Birth.Month, h.Birth.Day)
	}
	if h.Age != nil {
		age = fmt.Sprintf("%d歳", *h.Age)
	}
	rows := [][2]string{
		{"氏名 Name", h.Name},
		{"ふりがな", h.KanaName},
		{"生年月日 Date of birth", birth},
		{"年齢 Age", age},
		{"性別 Gender", h.Gender},
		{"住所 Address", h.Address},
		{"電話 Phone", h.Phone},
		{"メール Email", h.Email},
		{"国籍 Nationality", h.Nationality},
		{"言語 Languages", strings.Join(h.Languages, ", ")},
		{"配偶者 Marital status", h.MaritalStatus},
		{"扶養家族 Dependents", strconv.Itoa(h.Dependents)},
		{"入国可能日 Available from", h.AvailableFrom},
		{"希望職種 Desired job", h.DesiredJobCategory},
	}
	for _, r := range rows {
		if err := s.pair(r[0], r[1]); err != nil {
			return err
		}
	}
	s.row++
	return nil
}

func (s *sheet) periods(title string, rows []resume.PeriodRow) error {
	if err := s.heading(title); err != nil {
		return err
	}
	if err := s.values("年", "月", "名称", "内容"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := s.values(r.Date.Year, r.Date.Month, r.Name, r.Detail); err != nil {
			return err
		}
	}
	s.row++
	return nil
}

func (s *sheet) qualifications(qs []resume.Qualification) error {
	if err := s.heading("免許・資格 Qualifications"); err != nil {
		return err
	}
	for _, q := range qs {
		if err := s.values(q.Display.Year, q.Display.Month, q.Name); err != nil {
			return err
		}
	}
	s.row++
	return nil
}

func (s *sheet) physical(p resume.Physical) error {
	if err := s.heading("身体 Physical"); err != nil {
		return err
	}
	for _, r := range [][2]string{{"身長 Height", p.Height}, {"体重 Weight", p.Weight}, {"靴のサイズ Shoe size", p.ShoeSize}} {
		if err := s.pair(r[0], r[1]); err != nil {
			return err
		}
	}
	s.row++
	return nil
}

func (s *sheet) personal(p resume.Personal) error {
	if err := s.heading("自己PR Personal"); err != nil {
		return err
	}
	for _, r := range [][2]string{
		{"自己紹介 Self introduction", p.SelfIntroduction},
		{"長所 Strengths", p.Strengths},
		{"短所 Weaknesses", p.Weaknesses},
		{"趣味 Hobbies", p.Hobbies},
	} {
		if err := s.pair(r[0], r[1]); err != nil {
			return err
		}
	}
	if err := s.heading("家族構成 Family"); err != nil {
		return err
	}
	for _, m := range p.Family {
		age := ""
		if m.Age != nil {
			age = strconv.Itoa(*m.Age)
		}
		if err := s.values(m.Relationship, m.Name, age, m.Occupation); err != nil {
			return err
		}
	}
	return nil
}
