package domain

// EnrichObservation derives the category label from the maximum sustained
// wind and stamps the row with the ingestion time.
func EnrichObservation(obs Observation) Observation {
	obs.Category = deriveCategory(obs.MaxWindKts)
	obs.IngestedAt = clock.Now().UTC()
	return obs
}

// deriveCategory maps maximum sustained wind in knots to a Saffir-Simpson
// style label. Thresholds follow the NHC scale: hurricane categories start
// at 64 kt and Category 5 at 137 kt. Returns nil when wind is unrecorded.
func deriveCategory(windKts *int) *string {
	if windKts == nil {
		return nil
	}

	var c string
	switch w := *windKts; {
	case w < 34:
		c = "td"
	case w < 64:
		c = "ts"
	case w < 83:
		c = "cat1"
	case w < 96:
		c = "cat2"
	case w < 113:
		c = "cat3"
	case w < 137:
		c = "cat4"
	default:
		c = "cat5"
	}
	return &c
}
