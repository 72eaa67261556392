package scenario

// Selectors and patterns of the Dozzle UI checked by the builtin scenarios
const (
	TitlePattern      = `.* - Dozzle`
	SettingsLink      = `role=link[name="Settings"]`
	AboutHeading      = `role=heading[name="About"]`
	FuzzySearchTarget = `css=body`
	FuzzySearchKeys   = "Control+k"
	FuzzySearchInput  = `css=.modal >> placeholder=Search containers (⌘ + k, ⌃k)`
	ShowByNamePath    = "/show?name=dozzle"
	ContainerPattern  = `/container`
	TranslatedMenu    = `css=.menu-label [aria-current] >> text=Contenedores`
)

// Builtin returns the Dozzle acceptance scenarios against base
func Builtin(base string) []*Scenario {
	home := resolveOrRaw(base, "/")

	return []*Scenario{
		{
			Name: "has right title",
			Steps: []Step{
				{Action: ActionGoto, Target: home},
				{Action: ActionExpectTitle, Target: TitlePattern},
			},
		},
		{
			Name: "click on settings button",
			Steps: []Step{
				{Action: ActionGoto, Target: home},
				{Action: ActionClick, Target: SettingsLink},
				{Action: ActionExpectVisible, Target: AboutHeading},
			},
		},
		{
			Name: "shortcut for fuzzy search",
			Steps: []Step{
				{Action: ActionGoto, Target: home},
				{Action: ActionPress, Target: FuzzySearchTarget, Value: FuzzySearchKeys},
				{Action: ActionExpectVisible, Target: FuzzySearchInput},
			},
		},
		{
			Name: "route by name",
			Steps: []Step{
				{Action: ActionGoto, Target: home},
				{Action: ActionGoto, Target: resolveOrRaw(base, ShowByNamePath)},
				{Action: ActionExpectURL, Target: ContainerPattern},
			},
		},
		{
			Name:   "translated text",
			Group:  "es locale",
			Locale: "es",
			Steps: []Step{
				{Action: ActionGoto, Target: home},
				{Action: ActionExpectVisible, Target: TranslatedMenu},
			},
		},
	}
}

// resolveOrRaw keeps the raw target when base is not a valid url, so Validate can still run
func resolveOrRaw(base, target string) string {
	resolved, err := ResolveURL(base, target)
	if err != nil {
		return target
	}

	return resolved
}
