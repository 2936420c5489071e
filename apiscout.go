// Package apiscout provides a best-effort crawler for bank developer
// portals. It visits portal pages breadth-first under depth and page
// budgets, scores each page against a PSD2 keyword taxonomy, classifies
// the APIs it describes (Account Information, Payment Initiation,
// Confirmation of Funds), and produces a deduplicated API inventory
// with confidence scores.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/) or their function where no dependency dominates
// (crawl/, score/).
package apiscout
