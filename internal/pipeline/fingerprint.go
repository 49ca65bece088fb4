package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/fosman1977/legal-case-management-ai-sub013/internal/model"
)

// Fingerprint derives the cache fingerprint for a document set and case
// context. It hashes document identity and size, not content, so raw text
// never feeds the cache layer.
func Fingerprint(docs []model.Document, caseContext string) string {
	lines := make([]string, 0, len(docs)+1)
	for _, doc := range docs {
		lines = append(lines, fmt.Sprintf("%s|%s|%d", doc.ID, doc.Type, len(doc.Content)))
	}
	sort.Strings(lines)
	lines = append(lines, "ctx:"+caseContext)

	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
