// Package stopwords supplies the default English stopword dictionary and
// loads custom dictionaries from YAML files. The dictionary is configuration:
// the analyzer only ever sees an injected set of strings.
package stopwords

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var english = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
	"you", "your", "yours", "yourself", "yourselves",
	"he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
	"what", "which", "who", "whom", "this", "that", "these", "those",
	"am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing",
	"a", "an", "the", "and", "but", "if", "or", "because", "as", "until", "while",
	"of", "at", "by", "for", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below",
	"to", "from", "up", "down", "in", "out", "on", "off", "over", "under",
	"again", "further", "then", "once", "here", "there",
	"when", "where", "why", "how",
	"all", "any", "both", "each", "few", "more", "most", "other", "some", "such",
	"no", "nor", "not", "only", "own", "same", "so", "than", "too", "very",
	"s", "t", "can", "will", "just", "don", "should", "now",
}

// Default returns a copy of the built-in English stopword set.
func Default() []string {
	return append([]string{}, english...)
}

type dictionaryFile struct {
	Stopwords []string `yaml:"stopwords"`
}

// Load reads a stopword dictionary from a YAML file. The file is either a
// plain sequence of words or a mapping with a "stopwords" key.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "[Load] os.ReadFile")
	}

	var dict dictionaryFile
	if err := yaml.Unmarshal(data, &dict); err == nil && len(dict.Stopwords) > 0 {
		return dict.Stopwords, nil
	}

	var words []string
	if err := yaml.Unmarshal(data, &words); err != nil {
		return nil, errors.Wrap(err, "[Load] yaml.Unmarshal")
	}
	return words, nil
}
