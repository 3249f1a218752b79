// Package catalog holds the question catalog: concepts for the linear quiz,
// zone definitions, and zone challenge templates.
package catalog

import "slices"

// Catalog is an immutable, validated question catalog.
type Catalog struct {
	concepts  []Concept
	zones     []Zone
	templates []Template
	subjects  []string
}

func newCatalog(concepts []Concept, zones []Zone, templates []Template) *Catalog {
	c := &Catalog{concepts: concepts, zones: zones, templates: templates}
	for _, con := range concepts {
		if !slices.Contains(c.subjects, con.Subject) {
			c.subjects = append(c.subjects, con.Subject)
		}
	}
	return c
}

// Subjects returns subjects in first-seen order.
func (c *Catalog) Subjects() []string {
	return slices.Clone(c.subjects)
}

// HasSubject reports whether any concept belongs to subject.
func (c *Catalog) HasSubject(subject string) bool {
	return slices.Contains(c.subjects, subject)
}

// Topics returns the topics of subject in first-seen order.
func (c *Catalog) Topics(subject string) []string {
	var topics []string
	for _, con := range c.concepts {
		if con.Subject == subject && !slices.Contains(topics, con.Topic) {
			topics = append(topics, con.Topic)
		}
	}
	return topics
}

// Concepts returns the concepts of subject.
func (c *Catalog) Concepts(subject string) []Concept {
	var out []Concept
	for _, con := range c.concepts {
		if con.Subject == subject {
			out = append(out, con)
		}
	}
	return out
}

// Len returns the number of concepts.
func (c *Catalog) Len() int {
	return len(c.concepts)
}

// Zones returns the zones in unlock order.
func (c *Catalog) Zones() []Zone {
	return slices.Clone(c.zones)
}

// Zone returns the zone with the given id.
func (c *Catalog) Zone(id string) (Zone, bool) {
	for _, z := range c.zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// ChallengeTemplate returns the n-th template for a branch, rotating
// through the branch's own templates, then the zone-wide ones, then
// DefaultTemplate.
func (c *Catalog) ChallengeTemplate(zone, branch string, n int) Template {
	var own, zoneWide []Template
	for _, t := range c.templates {
		if t.Zone != zone {
			continue
		}
		switch t.Branch {
		case branch:
			own = append(own, t)
		case "":
			zoneWide = append(zoneWide, t)
		}
	}
	pool := own
	if len(pool) == 0 {
		pool = zoneWide
	}
	if len(pool) == 0 {
		return DefaultTemplate
	}
	if n < 0 {
		n = 0
	}
	return pool[n%len(pool)]
}

// ZoneWideTemplates returns the templates that apply to a whole zone, in
// catalog order across zones.
func (c *Catalog) ZoneWideTemplates() []Template {
	var out []Template
	for _, t := range c.templates {
		if t.Branch == "" {
			out = append(out, t)
		}
	}
	return out
}
