package binding

import "github.com/mvp-joe/testable-docs/internal/jsdoc"

// Doc is the documentation of one declaration, merged from its comments.
type Doc struct {
	HasComment  bool
	Description string
	Private     bool
	Returns     *jsdoc.Tag
	Params      map[string]jsdoc.Tag
}

// Param returns the param tag documenting name.
func (d Doc) Param(name string) (jsdoc.Tag, bool) {
	tag, ok := d.Params[name]
	return tag, ok
}

// Merge folds comments in order into a Doc. A later comment overrides every
// field it sets; fields it leaves empty keep earlier values. Private is never
// reset once set. Within one comment the first param tag of a name wins.
func Merge(comments []*jsdoc.Comment) Doc {
	doc := Doc{Params: map[string]jsdoc.Tag{}}

	for _, c := range comments {
		if c == nil {
			continue
		}
		doc.HasComment = true

		if c.Description != "" {
			doc.Description = c.Description
		}
		if c.Private {
			doc.Private = true
		}

		seen := map[string]bool{}
		for _, tag := range c.Tags {
			switch tag.Title {
			case jsdoc.TitleReturns:
				tag := tag
				doc.Returns = &tag
			case jsdoc.TitleParam:
				if tag.Name == "" || seen[tag.Name] {
					continue
				}
				seen[tag.Name] = true
				doc.Params[tag.Name] = tag
			}
		}
	}
	return doc
}
