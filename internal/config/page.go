package config

// PageConfig holds the static text shown around the schedule grid.
type PageConfig struct {
	Title    string
	Subtitle string
	Footer   string
}

func loadPage(fv fileValues) PageConfig {
	return PageConfig{
		Title:    envOrDefault(envPageTitle, fv.String(keyPageTitle, defaultPageTitle)),
		Subtitle: envOrDefault(envPageSubtitle, fv.String(keyPageSubtitle, defaultPageSubtitle)),
		Footer:   envOrDefault(envPageFooter, fv.String(keyPageFooter, defaultPageFooter)),
	}
}
