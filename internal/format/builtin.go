package format

// Builtin format sets for the entity kinds the CLI works with most. The
// column keys name entries in a flattened element: properties keys as sent
// by the server, the reserved header keys (guid, type_name, ...), the
// derived keys (classifications, subject_area, mermaid), and relationship
// role keys (members, parent_glossary, ...).

// commonColumns are the generic columns shared by the Default set and used
// as the tail of several specific sets.
var commonColumns = []Column{
	{Name: "Display Name", Key: "display_name"},
	{Name: "Type", Key: "type_name"},
	{Name: "Qualified Name", Key: "qualified_name"},
	{Name: "GUID", Key: "guid"},
	{Name: "Description", Key: "description", Long: true},
	{Name: "Classifications", Key: "classifications"},
}

// mermaidFormat is the shared MERMAID-only Format appended to sets whose
// endpoints return embedded diagram text.
var mermaidFormat = Format{
	Modes:   []OutputMode{ModeMermaid},
	Columns: []Column{{Name: "Mermaid Graph", Key: "mermaid", Long: true}},
}

// Builtins returns the seed declarations, keyed by kind name.
func Builtins() map[string]*FormatSet {
	return map[string]*FormatSet{
		DefaultKind: {
			Heading:     "Open Metadata Elements",
			Description: "Generic columns applicable to any referenceable element.",
			Aliases:     []string{"Referenceable", "Referenceables", "OpenMetadataRootElement"},
			Formats: []Format{
				{Modes: []OutputMode{ModeAll}, Columns: commonColumns},
			},
			Action: &ActionSpec{
				Function:       "FindElements",
				RequiredParams: []string{"search_string"},
				OptionalParams: []string{"page_size", "start_from"},
			},
		},

		"Collections": {
			Heading:     "Collections",
			Description: "Collections of metadata elements, including folders, data specs and dictionaries.",
			Aliases:     []string{"Collection", "RootCollection", "Folder", "DataSpec", "DataDictionary"},
			Annotations: map[string][]string{"wikilinks": {"[[Collections]]"}},
			Formats: []Format{
				{
					Modes: []OutputMode{ModeList, ModeMD, ModeDict, ModeJSON},
					Columns: []Column{
						{Name: "Display Name", Key: "display_name"},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "Category", Key: "category"},
						{Name: "GUID", Key: "guid"},
						{Name: "Classifications", Key: "classifications"},
						{Name: "Members", Key: "members"},
					},
				},
				{
					Modes: []OutputMode{ModeForm, ModeReport},
					Columns: []Column{
						{Name: "Display Name", Key: "display_name"},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "Category", Key: "category"},
						{Name: "Description", Key: "description", Long: true},
						{Name: "Classifications", Key: "classifications"},
						{Name: "Members", Key: "members"},
						{Name: "Member Count", Key: "member_count"},
						{Name: "Created By", Key: "created_by"},
						{Name: "Create Time", Key: "create_time"},
					},
				},
				mermaidFormat,
			},
			Action: &ActionSpec{
				Function:       "FindCollections",
				RequiredParams: []string{"search_string"},
				OptionalParams: []string{"page_size", "start_from"},
			},
		},

		"Glossary Terms": {
			Heading:     "Glossary Terms",
			Description: "Semantic definitions from the glossaries known to the server.",
			Aliases:     []string{"GlossaryTerm", "GlossaryTerms", "Term", "Terms"},
			Formats: []Format{
				{
					Modes: []OutputMode{ModeAll},
					Columns: []Column{
						{Name: "Term Name", Key: "display_name"},
						{Name: "Summary", Key: "summary"},
						{Name: "Description", Key: "description", Long: true},
						{Name: "Status", Key: "status"},
						{Name: "Version", Key: "version_identifier"},
						{Name: "Subject Area", Key: "subject_area"},
						{Name: "Glossary", Key: "parent_glossary"},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "GUID", Key: "guid"},
					},
				},
				mermaidFormat,
			},
			Action: &ActionSpec{
				Function:       "FindGlossaryTerms",
				RequiredParams: []string{"search_string"},
				OptionalParams: []string{"glossary_guid", "page_size", "start_from"},
			},
		},

		"Projects": {
			Heading:     "Projects",
			Description: "Projects tracked in the metadata catalog.",
			Aliases:     []string{"Project", "Campaign", "Task", "StudyProject"},
			Formats: []Format{
				{
					Modes: []OutputMode{ModeAll},
					Columns: []Column{
						{Name: "Project Name", Key: "display_name"},
						{Name: "Identifier", Key: "identifier"},
						{Name: "Status", Key: "project_status"},
						{Name: "Phase", Key: "project_phase"},
						{Name: "Start Date", Key: "start_date"},
						{Name: "Description", Key: "description", Long: true},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "GUID", Key: "guid"},
					},
				},
			},
			Action: &ActionSpec{
				Function:       "FindProjects",
				RequiredParams: []string{"search_string"},
				OptionalParams: []string{"page_size", "start_from"},
			},
		},

		"Data Assets": {
			Heading:     "Data Assets",
			Description: "Deployed data assets catalogued by the server.",
			Aliases:     []string{"Asset", "Assets", "DataAsset", "DataAssets"},
			Formats: []Format{
				{
					Modes: []OutputMode{ModeAll},
					Columns: []Column{
						{Name: "Display Name", Key: "display_name"},
						{Name: "Type", Key: "type_name"},
						{Name: "Deployed Implementation", Key: "deployed_implementation_type"},
						{Name: "Zones", Key: "zone_membership"},
						{Name: "Description", Key: "description", Long: true},
						{Name: "Subject Area", Key: "subject_area"},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "GUID", Key: "guid"},
					},
				},
				mermaidFormat,
			},
			Action: &ActionSpec{
				Function:       "FindElements",
				RequiredParams: []string{"search_string"},
				OptionalParams: []string{"page_size", "start_from"},
				SpecParams:     map[string]string{"metadata_element_types": "DataAsset"},
			},
		},

		"Governance Definitions": {
			Heading:     "Governance Definitions",
			Description: "Policies, principles and other governance definitions.",
			Aliases:     []string{"GovernanceDefinition", "GovernanceDefinitions", "Policies", "GovernancePolicy"},
			Formats: []Format{
				{
					Modes: []OutputMode{ModeAll},
					Columns: []Column{
						{Name: "Title", Key: "title"},
						{Name: "Summary", Key: "summary", Long: true},
						{Name: "Scope", Key: "scope"},
						{Name: "Importance", Key: "importance"},
						{Name: "Domain", Key: "domain_identifier"},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "GUID", Key: "guid"},
					},
				},
			},
			Action: &ActionSpec{
				Function:       "FindGovernanceDefinitions",
				RequiredParams: []string{"search_string"},
				OptionalParams: []string{"page_size", "start_from"},
			},
		},

		"External References": {
			Heading:     "External References",
			Description: "Links to documents and resources outside the catalog.",
			Aliases:     []string{"ExternalReference", "ExternalReferences", "CitedDocument"},
			Formats: []Format{
				{
					Modes: []OutputMode{ModeAll},
					Columns: []Column{
						{Name: "Title", Key: "display_name"},
						{Name: "Reference Title", Key: "reference_title"},
						{Name: "URL", Key: "url"},
						{Name: "Description", Key: "description", Long: true},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "GUID", Key: "guid"},
					},
				},
			},
			Action: &ActionSpec{
				Function:       "FindElements",
				RequiredParams: []string{"search_string"},
				SpecParams:     map[string]string{"metadata_element_types": "ExternalReference"},
			},
		},

		"Valid Values": {
			Heading:     "Valid Values",
			Description: "Valid value definitions and their memberships.",
			Aliases:     []string{"ValidValue", "ValidValues", "ValidValueDefinition"},
			Formats: []Format{
				{
					Modes: []OutputMode{ModeAll},
					Columns: []Column{
						{Name: "Display Name", Key: "display_name"},
						{Name: "Preferred Value", Key: "preferred_value"},
						{Name: "Category", Key: "category"},
						{Name: "Data Type", Key: "data_type"},
						{Name: "Description", Key: "description", Long: true},
						{Name: "Qualified Name", Key: "qualified_name"},
						{Name: "GUID", Key: "guid"},
					},
				},
			},
			Action: &ActionSpec{
				Function:       "FindElements",
				RequiredParams: []string{"search_string"},
				SpecParams:     map[string]string{"metadata_element_types": "ValidValueDefinition"},
			},
		},
	}
}

// BuiltinRegistry returns a registry seeded with the builtin format sets.
// The builtin declarations are maintained alongside their validation rules,
// so registration failures here are programming errors.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	for kind, set := range Builtins() {
		if err := r.Register(kind, set); err != nil {
			panic(err)
		}
	}
	return r
}
