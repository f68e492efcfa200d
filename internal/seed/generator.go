package seed

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/domain/model"
)

const (
	maxPoints = 200
	maxGrade  = 11
)

var (
	lastNames = []string{ //nolint:gochecknoglobals // name pool
		"Бойко", "Шевченко", "Ковальчук", "Ґудзь", "Єременко", "Іваненко",
		"Бондаренко", "Ткаченко", "Кравченко", "Олійник", "Поліщук", "Яковенко",
		"Мельник", "Коваленко", "Савчук", "Лисенко", "Руденко", "Марченко",
	}
	firstNames = []string{ //nolint:gochecknoglobals // name pool
		"Іван", "Олена", "Тарас", "Марія", "Андрій", "Оксана", "Богдан",
		"Ірина", "Остап", "Соломія", "Дмитро", "Юлія", "Ярослав", "Катерина",
	}
	classLetters = []string{"А", "Б", "В", "Г"} //nolint:gochecknoglobals // class pool
)

// randInt returns a uniform value in [0, n) from crypto/rand.
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Generate creates n students with random names, classes and points. Points
// are drawn from a narrow range so ties are common.
func Generate(n int) []model.Student {
	if n <= 0 {
		return []model.Student{}
	}
	out := make([]model.Student, n)
	for i := range out {
		last := lastNames[randInt(len(lastNames))]
		first := firstNames[randInt(len(firstNames))]
		out[i] = model.Student{
			ID:         uuid.NewString(),
			LastName:   last,
			FirstName:  first,
			FullName:   last + " " + first,
			Points:     generatePoints(),
			ClassLabel: strconv.Itoa(1+randInt(maxGrade)) + classLetters[randInt(len(classLetters))],
		}
	}
	return out
}

// generatePoints rounds to multiples of five to make ties likely.
func generatePoints() int {
	return randInt(maxPoints/5+1) * 5
}
