// Package registry provides the central glue for the shape family
// system.
//
// The Registry stores the mapping between shape family names used in
// section blocks (e.g. "W") and the compiled Go generators that turn a
// shape database row into a section. Each shapes package also embeds an
// HCL manifest declaring the properties its generator consumes.
//
// During application startup the registry is populated and then
// validated, so a generator whose input struct drifts from its public
// manifest fails loudly instead of producing wrong sections.
package registry
