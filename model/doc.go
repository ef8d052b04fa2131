// Package model provides the intermediate representation (IR) for parsed
// vObject content.
//
// This package defines the user-facing data structures that represent
// parsed vCard and iCalendar data. All parsing operations ultimately
// produce these types, making them the primary API for consuming parsed
// content.
//
// # Components
//
// The [Component] type represents one BEGIN/END block (VCARD, VCALENDAR,
// VEVENT, VTODO, ...). Components carry properties and, for iCalendar,
// nested child components:
//
//	card := model.NewComponent("VCARD")
//	card.AddProperty(&model.Property{Name: "FN", Value: "John Doe"})
//
// # Properties
//
// The [Property] type is one content line: group, name, parameters, and the
// raw text value. Values are never interpreted semantically; the one
// transformation offered is [Property.DecodedValue], which reverses the
// transfer encoding declared by the ENCODING parameter (quoted-printable or
// base64) and, when a CHARSET parameter is present, transcodes the result
// to UTF-8.
//
// # Parameters
//
// The [Params] type is an ordered multimap of property parameters.
// Parameter names are matched case-insensitively. vCard 2.1 bare type
// parameters (e.g. TEL;HOME;VOICE) are stored with an empty name and
// surface through [Params.Types].
package model
