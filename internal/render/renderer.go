package render

import (
	"strings"

	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/config"
	"github.com/genricoloni/mprisbar/internal/domain"
)

// markupEscaper escapes text for embedding in Pango-style markup
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// Renderer substitutes snapshot values into the configured templates.
// Template selection and the placeholder set follow the configuration
// surface: {player}, {status}, {artist}, {title}, {album}, {length},
// {player_icon}, {status_icon} and {dynamic}.
type Renderer struct {
	logger *zap.Logger
	cfg    *config.Config
}

// New creates a renderer over the given configuration
func New(logger *zap.Logger, cfg *config.Config) *Renderer {
	return &Renderer{logger: logger, cfg: cfg}
}

// Render picks the template for the snapshot's status and substitutes its
// placeholders. A direct placeholder referencing an absent optional field,
// or an unknown placeholder, fails with a TemplateError; the caller keeps
// the prior rendered output.
func (r *Renderer) Render(info *domain.PlayerInfo) (string, error) {
	tmpl := r.cfg.TemplateFor(info.Status)

	var b strings.Builder
	for i := 0; i < len(tmpl); {
		if tmpl[i] != '{' {
			b.WriteByte(tmpl[i])
			i++
			continue
		}
		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			// unterminated brace, copied literally
			b.WriteString(tmpl[i:])
			break
		}
		value, err := r.resolve(tmpl[i+1:i+end], info)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		i += end + 1
	}
	return b.String(), nil
}

func (r *Renderer) resolve(name string, info *domain.PlayerInfo) (string, error) {
	switch name {
	case "player":
		return info.Name, nil
	case "status":
		return info.StatusString, nil
	case "artist":
		return requireField(name, info.Artist)
	case "album":
		return requireField(name, info.Album)
	case "title":
		return requireField(name, info.Title)
	case "length":
		if info.Length == "" {
			return "", &domain.TemplateError{Placeholder: name, Reason: "field not present for current track"}
		}
		return info.Length, nil
	case "dynamic":
		return dynamic(info), nil
	case "player_icon":
		return icon(r.cfg.PlayerIcons, info.Name), nil
	case "status_icon":
		return icon(r.cfg.StatusIcons, info.StatusString), nil
	default:
		return "", &domain.TemplateError{Placeholder: name, Reason: "unknown placeholder"}
	}
}

func requireField(name, value string) (string, error) {
	if value == "" {
		return "", &domain.TemplateError{Placeholder: name, Reason: "field not present for current track"}
	}
	return markupEscaper.Replace(value), nil
}

// dynamic concatenates whichever of artist/album/title are present,
// separated by " - ", then appends the bracketed length. Tolerant of any
// combination of missing fields.
func dynamic(info *domain.PlayerInfo) string {
	parts := make([]string, 0, 3)
	for _, value := range []string{info.Artist, info.Album, info.Title} {
		if value != "" {
			parts = append(parts, markupEscaper.Replace(value))
		}
	}
	text := strings.Join(parts, " - ")
	if info.Length != "" {
		text += " [" + info.Length + "]"
	}
	return text
}

// icon looks up a key in an icon table, falling back to the "default"
// entry. Lookup never fails; both keys absent yields "".
func icon(table map[string]string, key string) string {
	if table == nil {
		return ""
	}
	if value, ok := table[key]; ok {
		return value
	}
	return table["default"]
}
