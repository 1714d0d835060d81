package taxonomy

import (
	"fmt"
	"os"

	"github.com/mvidali/newsbrief/internal/domain"
	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk topic taxonomy. Topics are grouped by category;
// the category name becomes the grouping key on every topic in it.
type SeedFile struct {
	Categories []SeedCategory `yaml:"categories"`
}

type SeedCategory struct {
	Name           string      `yaml:"name"`
	ParentCategory string      `yaml:"parent_category,omitempty"`
	Topics         []SeedTopic `yaml:"topics"`
}

type SeedTopic struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

func LoadFromFile(path string) ([]domain.Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]domain.Topic, error) {
	var sf SeedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse taxonomy YAML: %w", err)
	}
	if len(sf.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}

	seen := make(map[string]struct{})
	var topics []domain.Topic
	for _, cat := range sf.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("category without a name")
		}
		if len(cat.Topics) == 0 {
			return nil, fmt.Errorf("category %q has no topics", cat.Name)
		}
		for _, st := range cat.Topics {
			if st.Slug == "" {
				return nil, fmt.Errorf("topic without a slug in category %q", cat.Name)
			}
			if st.Name == "" {
				return nil, fmt.Errorf("topic %q has no name", st.Slug)
			}
			if _, dup := seen[st.Slug]; dup {
				return nil, fmt.Errorf("duplicate topic slug %q", st.Slug)
			}
			seen[st.Slug] = struct{}{}

			topics = append(topics, domain.Topic{
				Slug:           st.Slug,
				Name:           st.Name,
				Category:       cat.Name,
				ParentCategory: cat.ParentCategory,
				Description:    st.Description,
			})
		}
	}
	return topics, nil
}
