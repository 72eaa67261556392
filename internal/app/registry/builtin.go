package registry

// IconPrefix is the virtual module root icon components are imported from
const IconPrefix = "~icons/"

var builtin = []Component{
	{Name: "CarbonCaretDown", Path: "~icons/carbon/caret-down"},
	{Name: "CilColumns", Path: "~icons/cil/columns"},
	{Name: "CilFindInPage", Path: "~icons/cil/find-in-page"},
	{Name: "ContainerStat", Path: "./components/ContainerStat.vue"},
	{Name: "ContainerTitle", Path: "./components/ContainerTitle.vue"},
	{Name: "DropdownMenu", Path: "./components/DropdownMenu.vue"},
	{Name: "FuzzySearchModal", Path: "./components/FuzzySearchModal.vue"},
	{Name: "InfiniteLoader", Path: "./components/InfiniteLoader.vue"},
	{Name: "LogActionsToolbar", Path: "./components/LogActionsToolbar.vue"},
	{Name: "LogContainer", Path: "./components/LogContainer.vue"},
	{Name: "LogEventSource", Path: "./components/LogEventSource.vue"},
	{Name: "LogViewer", Path: "./components/LogViewer.vue"},
	{Name: "LogViewerWithSource", Path: "./components/LogViewerWithSource.vue"},
	{Name: "MdiDotsVertical", Path: "~icons/mdi/dots-vertical"},
	{Name: "MdiLightChevronDoubleDown", Path: "~icons/mdi-light/chevron-double-down"},
	{Name: "MdiLightChevronLeft", Path: "~icons/mdi-light/chevron-left"},
	{Name: "MdiLightChevronRight", Path: "~icons/mdi-light/chevron-right"},
	{Name: "MdiLightCog", Path: "~icons/mdi-light/cog"},
	{Name: "MdiLightMagnify", Path: "~icons/mdi-light/magnify"},
	{Name: "MobileMenu", Path: "./components/MobileMenu.vue"},
	{Name: "OcticonContainer24", Path: "~icons/octicon/container24"},
	{Name: "OcticonDownload24", Path: "~icons/octicon/download24"},
	{Name: "OcticonTrash24", Path: "~icons/octicon/trash24"},
	{Name: "PastTime", Path: "./components/PastTime.vue"},
	{Name: "RelativeTime", Path: "./components/RelativeTime.vue"},
	{Name: "ScrollableView", Path: "./components/ScrollableView.vue"},
	{Name: "ScrollProgress", Path: "./components/ScrollProgress.vue"},
	{Name: "Search", Path: "./components/Search.vue"},
	{Name: "SideMenu", Path: "./components/SideMenu.vue"},
}

// Builtin returns the registry of the Dozzle front-end
func Builtin() Registry {
	r := New()

	for _, c := range builtin {
		_ = r.Add(c)
	}

	return r
}
