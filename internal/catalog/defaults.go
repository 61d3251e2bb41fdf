package catalog

// Default returns the stock registry: signing marks, a checkbox, free text,
// and the smart kinds bound to employee/company attributes. Smart kinds are
// ordinary text kinds whose initial label advertises the bound attribute;
// binding resolution happens outside this package.
func Default() (*Registry, error) {
	return New(
		Entry{
			ID:    "signature",
			Label: "Signature",
			EditorTemplate: `<g class="field field-signature"><rect width="160" height="48" rx="4" fill="#fef3c7" stroke="#d97706"/>` +
				`<text x="80" y="30" text-anchor="middle" font-size="14">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-signature"><rect width="160" height="48" rx="4" fill="none" stroke="#9ca3af" stroke-dasharray="4 2"/>` +
				`<text x="80" y="30" text-anchor="middle" font-size="14" fill="#6b7280">{{.Label}}</text></g>`,
		},
		Entry{
			ID:    "initials",
			Label: "Initials",
			EditorTemplate: `<g class="field field-initials"><rect width="64" height="40" rx="4" fill="#fef3c7" stroke="#d97706"/>` +
				`<text x="32" y="25" text-anchor="middle" font-size="12">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-initials"><rect width="64" height="40" rx="4" fill="none" stroke="#9ca3af" stroke-dasharray="4 2"/>` +
				`<text x="32" y="25" text-anchor="middle" font-size="12" fill="#6b7280">{{.Label}}</text></g>`,
		},
		Entry{
			ID:    KindCheckbox,
			Label: "Checkbox",
			EditorTemplate: `<g class="field field-checkbox"><rect width="20" height="20" rx="3" fill="#ffffff" stroke="#374151"/>` +
				`{{if .Checked}}<path d="M4 10 l4 5 l8 -10" fill="none" stroke="#047857" stroke-width="3"/>{{end}}</g>`,
			PreviewTemplate: `<g class="field field-checkbox"><rect width="20" height="20" rx="3" fill="none" stroke="#9ca3af"/>` +
				`{{if .Checked}}<path d="M4 10 l4 5 l8 -10" fill="none" stroke="#6b7280" stroke-width="3"/>{{end}}</g>`,
		},
		Entry{
			ID:    "text",
			Label: "Text",
			EditorTemplate: `<g class="field field-text"><rect width="140" height="32" rx="4" fill="#e0f2fe" stroke="#0369a1"/>` +
				`<text x="8" y="21" font-size="13">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-text"><text font-size="13">{{.Text}}</text></g>`,
		},
		Entry{
			ID:    "fullName",
			Label: "Full Name",
			EditorTemplate: `<g class="field field-smart"><rect width="140" height="32" rx="4" fill="#ede9fe" stroke="#6d28d9"/>` +
				`<text x="8" y="21" font-size="13">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-smart"><text font-size="13">{{.Text}}</text></g>`,
		},
		Entry{
			ID:    "email",
			Label: "Email Address",
			EditorTemplate: `<g class="field field-smart"><rect width="140" height="32" rx="4" fill="#ede9fe" stroke="#6d28d9"/>` +
				`<text x="8" y="21" font-size="13">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-smart"><text font-size="13">{{.Text}}</text></g>`,
		},
		Entry{
			ID:    "jobTitle",
			Label: "Job Title",
			EditorTemplate: `<g class="field field-smart"><rect width="140" height="32" rx="4" fill="#ede9fe" stroke="#6d28d9"/>` +
				`<text x="8" y="21" font-size="13">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-smart"><text font-size="13">{{.Text}}</text></g>`,
		},
		Entry{
			ID:    "companyName",
			Label: "Company Name",
			EditorTemplate: `<g class="field field-smart"><rect width="140" height="32" rx="4" fill="#ede9fe" stroke="#6d28d9"/>` +
				`<text x="8" y="21" font-size="13">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-smart"><text font-size="13">{{.Text}}</text></g>`,
		},
		Entry{
			ID:    "date",
			Label: "Date",
			EditorTemplate: `<g class="field field-smart"><rect width="110" height="32" rx="4" fill="#ede9fe" stroke="#6d28d9"/>` +
				`<text x="8" y="21" font-size="13">{{if .Text}}{{.Text}}{{else}}{{.Label}}{{end}}</text></g>`,
			PreviewTemplate: `<g class="field field-smart"><text font-size="13">{{.Text}}</text></g>`,
		},
	)
}

// MustDefault is Default for wiring paths where a broken stock registry is a
// programming error.
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}
