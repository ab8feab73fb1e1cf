package registry

// Default returns the built-in alternatives for the CCJ dataset.
func Default() *Registry {
	r, err := NewBuilder().
		Define(1, "Pretrial release", Groups{
			ShortTermDetainee:   {"wtp_freedom", "lost_wages"},
			LongTermDetainee:    {"income_reduced"},
			ShortTermSociety:    {"crime_prev_measure"},
			LongTermSociety:     {"wrongful_death_wtp_life"},
			ShortTermGovernment: {"ccj_funding_2018"},
			LongTermGovernment:  {"inc_conv_len"},
		}).
		Define(2, "Electronic monitoring", Groups{
			ShortTermDetainee:   {"wtp_freedom", "lost_wages", "em_fees_paid"},
			LongTermDetainee:    {"income_reduced"},
			ShortTermSociety:    {"crime_prev_measure", "em_violation_cost"},
			ShortTermGovernment: {"em_program_cost_2018"},
			LongTermGovernment:  {"inc_conv_len"},
		}).
		Define(3, "Bail reform", Groups{
			ShortTermDetainee:   {"wtp_freedom", "lost_wages", "bail_paid"},
			LongTermDetainee:    {"income_reduced"},
			ShortTermSociety:    {"crime_prev_measure", "fta_cost"},
			LongTermSociety:     {"wrongful_death_wtp_life"},
			ShortTermGovernment: {"ccj_funding_2018", "court_processing_cost"},
			LongTermGovernment:  {"inc_conv_len"},
		}).
		Define(4, "Diversion program", Groups{
			ShortTermDetainee:   {"wtp_freedom"},
			LongTermDetainee:    {"income_reduced"},
			ShortTermSociety:    {"victimization_cost"},
			LongTermSociety:     {"recidivism_reduction"},
			ShortTermGovernment: {"diversion_program_cost"},
			LongTermGovernment:  {"inc_conv_len", "tax_revenue_gain"},
		}).
		Build()
	if err != nil {
		panic("registry: invalid built-in table: " + err.Error())
	}
	return r
}
