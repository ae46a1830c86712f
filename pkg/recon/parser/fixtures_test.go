package parser

import (
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
)

// filterSheet is a title, a "Filtros" panel in rows 3-5 and a crosstab with
// year columns in rows 7-10, plus a footnote in row 12.
func filterSheet() *grid.Sheet {
	s := grid.NewSheet("Quadro 1")
	s.SetText(1, 1, "Quadro 1 - População residente")
	s.SetText(3, 1, "Filtros:")
	s.SetText(4, 1, "Sexo: HM")
	s.SetText(5, 1, "Ano: 2020")

	s.SetNumber(7, 2, 2019)
	s.SetNumber(7, 3, 2020)
	s.SetText(8, 1, "Norte")
	s.SetNumber(8, 2, 10)
	s.SetNumber(8, 3, 20)
	s.SetText(9, 1, "Centro")
	s.SetNumber(9, 2, 30)
	s.SetNumber(9, 3, 40)
	s.SetText(10, 1, "(em branco)")
	s.SetNumber(10, 2, 40)
	s.SetNumber(10, 3, 60)

	s.SetText(12, 1, "Nota: valores provisórios")
	return s
}

// twoLevelSheet has sex over year column headers (merged outer cells) and
// region over age group row headers, with one outer row header written
// once without a merge.
func twoLevelSheet() *grid.Sheet {
	s := grid.NewSheet("Quadro 2")
	s.SetText(1, 1, "Quadro 2")

	s.SetText(3, 3, "Homens")
	s.Merge(models.CellRange{R1: 3, C1: 3, R2: 3, C2: 4})
	s.SetText(3, 5, "Mulheres")
	s.Merge(models.CellRange{R1: 3, C1: 5, R2: 3, C2: 6})
	for i, year := range []float64{2019, 2020, 2019, 2020} {
		s.SetNumber(4, 3+i, year)
	}

	s.SetText(5, 1, "Norte")
	s.Merge(models.CellRange{R1: 5, C1: 1, R2: 6, C2: 1})
	s.SetText(7, 1, "Centro")
	for r := 5; r <= 8; r++ {
		if r%2 == 1 {
			s.SetText(r, 2, "de 15 a 24 anos")
		} else {
			s.SetText(r, 2, "65 anos ou mais")
		}
	}

	v := 1.0
	for r := 5; r <= 8; r++ {
		for c := 3; c <= 6; c++ {
			s.SetNumber(r, c, v)
			v++
		}
	}
	return s
}
