package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/store/schema"
)

// Attribute is a single trait on a token metadata document.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata is the ERC-721 style metadata document minted with a ticket.
type TokenMetadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []Attribute `json:"attributes"`
}

// Builder constructs token metadata documents from templates.
//
//go:generate mockgen -source=builder.go -destination=../mocks/metadata_builder.go -package=mocks -mock_names=Builder=MockMetadataBuilder
type Builder interface {
	// Build constructs the metadata for a mint of the given template,
	// attributed to the given distribution source.
	Build(template *schema.TicketTemplate, source domain.Source) *TokenMetadata
	// Canonicalize serializes metadata into RFC 8785 canonical JSON so that
	// the same template and source always produce byte-identical output.
	Canonicalize(metadata *TokenMetadata) ([]byte, error)
	// Hash returns the hex SHA-256 of the canonical form
	Hash(metadata *TokenMetadata) (string, error)
}

type builder struct{}

// NewBuilder creates a metadata builder
func NewBuilder() Builder {
	return &builder{}
}

func transferableValue(transferable bool) string {
	if transferable {
		return "Yes"
	}
	return "No"
}

func (b *builder) Build(template *schema.TicketTemplate, source domain.Source) *TokenMetadata {
	return &TokenMetadata{
		Name:        template.Name,
		Description: template.Description,
		Image:       template.ImageURL,
		Attributes: []Attribute{
			{TraitType: "Ticket Type", Value: string(template.TicketType)},
			{TraitType: "Source", Value: source.TraitValue()},
			{TraitType: "Transferable", Value: transferableValue(template.IsTransferable)},
		},
	}
}

func (b *builder) Canonicalize(metadata *TokenMetadata) ([]byte, error) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize metadata: %w", err)
	}
	return canonical, nil
}

func (b *builder) Hash(metadata *TokenMetadata) (string, error) {
	canonical, err := b.Canonicalize(metadata)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
