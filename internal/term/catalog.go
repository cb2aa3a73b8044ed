package term

// standardTypes is the built-in catalogue of Italian civil-procedure terms.
var standardTypes = []TermType{
	{
		ID:          "termini_processuali_civili",
		Label:       "Termini Processuali Civili",
		DayCount:    90,
		Category:    CategoryProcessuale,
		Description: "Termini generali per atti processuali civili",
	},
	{
		ID:          "memorie_repliche",
		Label:       "Memorie e Repliche (artt. 171-ter, 189 cpc)",
		DayCount:    30,
		Category:    CategoryProcessuale,
		Description: "Termini per deposito memorie integrative e repliche",
	},
	{
		ID:          "separazione_divorzio",
		Label:       "Separazione e Divorzio",
		DayCount:    60,
		Category:    CategoryFamiglia,
		Description: "Termini specifici per procedimenti di famiglia",
	},
	{
		ID:          "procedimento_semplificato",
		Label:       "Procedimento Semplificato (art. 281-duodecies)",
		DayCount:    45,
		Category:    CategoryProcessuale,
		Description: "Termini per procedimento semplificato",
	},
	{
		ID:          "termini_183_190",
		Label:       "Termini 183 + 190 cpc",
		DayCount:    20,
		Category:    CategoryProcessuale,
		Description: "Termini per memorie e comparse",
	},
	{
		ID:          "esecuzioni_mobiliari",
		Label:       "Esecuzioni Mobiliari",
		DayCount:    30,
		Category:    CategoryEsecuzione,
		Description: "Termini per esecuzioni su beni mobili",
	},
	{
		ID:          "esecuzioni_immobiliari",
		Label:       "Esecuzioni Immobiliari",
		DayCount:    60,
		Category:    CategoryEsecuzione,
		Description: "Termini per esecuzioni su beni immobili",
	},
	{
		ID:          "esecuzioni_terzi",
		Label:       "Esecuzioni Presso Terzi",
		DayCount:    15,
		Category:    CategoryEsecuzione,
		Description: "Termini per esecuzioni presso terzi",
	},
	{
		ID:          "impugnazioni_civili",
		Label:       "Impugnazioni Civili",
		DayCount:    30,
		Category:    CategoryImpugnazione,
		Description: "Termini per impugnazioni in sede civile",
	},
	{
		ID:          "impugnazioni_amministrative",
		Label:       "Impugnazioni Amministrative",
		DayCount:    60,
		Category:    CategoryImpugnazione,
		Description: "Termini per impugnazioni in sede amministrativa",
	},
	{
		ID:          "impugnazioni_tributarie",
		Label:       "Impugnazioni Tributarie",
		DayCount:    60,
		Category:    CategoryImpugnazione,
		Description: "Termini per impugnazioni in sede tributaria",
	},
	{
		ID:          "deposito_atti_appello",
		Label:       "Deposito Atti Appello (art. 352 cpc)",
		DayCount:    30,
		Category:    CategoryDeposito,
		Description: "Termini per deposito atti nel processo di appello",
	},
	{
		ID:          "deposito_ctu",
		Label:       "Deposito CTU",
		DayCount:    45,
		Category:    CategoryDeposito,
		Description: "Termini per deposito consulenza tecnica d'ufficio",
	},
	{
		ID:          "scadenze_multe",
		Label:       "Scadenze Multe",
		DayCount:    30,
		Category:    CategoryVarie,
		Description: "Termini per presentare ricorso contro multe",
	},
	{
		ID:          GenericID,
		Label:       "Termini Generici",
		Category:    CategoryGenerico,
		Description: "Termini generici personalizzabili",
	},
}

var standard = mustRegistry(standardTypes)

// Standard returns the built-in registry.
func Standard() *Registry {
	return standard
}

func mustRegistry(types []TermType) *Registry {
	r, err := NewRegistry(types)
	if err != nil {
		panic(err)
	}
	return r
}
