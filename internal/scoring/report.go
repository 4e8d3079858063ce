package scoring

import "creator-quiz/internal/domain"

// AssembleReport looks up display text for a classification. Missing primary
// text falls back to the primary id; a missing [primary][secondary] entry
// falls back to the secondary id with no paragraphs.
func AssembleReport(cat *Catalog, primary domain.PrimaryType, secondary domain.SecondaryType) domain.ReportText {
	rep := domain.ReportText{
		Primary:     primary,
		Secondary:   secondary,
		Name:        string(primary),
		SubName:     string(secondary),
		Paragraphs:  []string{},
		Suitability: []string{},
	}
	if pt, ok := cat.primaryTexts[primary]; ok {
		if pt.Name != "" {
			rep.Name = pt.Name
		}
		rep.Icon = pt.Icon
		rep.Description = pt.Description
	}
	st, ok := cat.secondaryTexts[primary][secondary]
	if !ok {
		return rep
	}
	if st.Name != "" {
		rep.SubName = st.Name
	}
	rep.Paragraphs = append(rep.Paragraphs, st.Paragraphs...)
	rep.Suitability = append(rep.Suitability, st.Suitability...)
	return rep
}
