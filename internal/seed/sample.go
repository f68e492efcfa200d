package seed

import (
	"context"
	"fmt"

	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/internal/domain/model"
)

// SampleText is a ten-student roster in the free-text import format.
const SampleText = `
1. Бойко Іван - 150 балів - 5А клас
2. Шевченко Тарас - 145 балів - 3Б клас
3. Леся Українка - 140 балів - 4 клас
4. Франко Петро - 138 балів - 2Г клас
5. Сковорода Григорій - 130 балів - 6 клас
6. Костенко Ліна - 125 балів - 5В клас
7. Тичина Павло - 120 балів - 1А клас
8. Стус Василь - 110 балів - 3А клас
9. Симоненко Василь - 105 балів - 4Б клас
10. Підмогильний Валер'ян - 100 балів - 2В клас
`

// SampleRoster parses SampleText with the offline parser.
func SampleRoster(ctx context.Context) ([]model.Student, error) {
	res, err := importer.NewHeuristicParser().Parse(ctx, SampleText)
	if err != nil {
		return nil, fmt.Errorf("parse sample roster: %w", err)
	}
	return res.Students, nil
}
