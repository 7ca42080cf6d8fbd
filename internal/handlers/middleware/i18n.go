package middleware

import (
	"sort"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/rafabene/usuarios-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
	languages   []string
	matcher     language.Matcher
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	// O idioma padrão vem primeiro: é o fallback do matcher
	defaultLang := i18nService.GetDefaultLanguage()
	languages := []string{defaultLang}
	others := i18nService.GetSupportedLanguages()
	sort.Strings(others)
	for _, lang := range others {
		if lang != defaultLang {
			languages = append(languages, lang)
		}
	}

	tags := make([]language.Tag, 0, len(languages))
	supported := make([]string, 0, len(languages))
	for _, lang := range languages {
		tag, err := language.Parse(lang)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		supported = append(supported, lang)
	}

	return &I18nMiddleware{
		i18nService: i18nService,
		languages:   supported,
		matcher:     language.NewMatcher(tags),
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header (preferência do browser)
// 3. Idioma padrão (fallback)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if queryLang := c.Query("lang"); queryLang != "" && m.i18nService.IsLanguageSupported(queryLang) {
			lang = queryLang
		}

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

// parseAcceptLanguage escolhe o idioma suportado mais próximo do header.
// Exemplo: "pt,en;q=0.8" -> "pt-BR"; sem correspondência retorna "".
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" || len(m.languages) == 0 {
		return ""
	}

	preferred, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(preferred) == 0 {
		return ""
	}

	_, index, confidence := m.matcher.Match(preferred...)
	if confidence == language.No {
		return ""
	}

	return m.languages[index]
}
