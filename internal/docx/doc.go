// Package docx writes leases as Office Open XML (WordprocessingML) packages.
//
// The body comes from the same block classification the PDF composer uses.
// Headings map to the Heading1 and Heading2 styles, bullets to numbered or
// bulleted list paragraphs, and the fixed title page, signature block and
// exhibits are separated by page breaks. Output is byte-for-byte
// deterministic for a given input.
package docx
