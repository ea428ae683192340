package i18n

import (
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var messages = map[string]map[string]string{
	"en": {
		ERROR_INTERNAL:               "Internal error, please try again later",
		ERROR_NOTFOUND:               "Content not found",
		ERROR_INVALIDARGUMENT:        "Invalid request argument",
		ERROR_PERMISSION_DENIED:      "Permission denied",
		ERROR_UNAUTHORIZED:           "Not authenticated",
		ERROR_EXIST:                  "Content already exists",
		ERROR_FORBIDDEN:              "Forbidden",
		ERROR_TOO_MANY_REQUESTS:      "Too many requests",
		ERROR_INVALID_TOKEN:          "Invalid access token",
		ERROR_LOGIC_QUOTE_TEXT_EMPTY: "A quote needs some text",
		ERROR_LOGIC_INVALID_DATE:     "Invalid date, expect YYYY-MM-DD",
		ERROR_UNSUPPORTED_FILE_TYPE:  "Unsupported file type",
	},
	"zh-CN": {
		ERROR_INTERNAL:               "系统内部错误，请稍后再试",
		ERROR_NOTFOUND:               "内容不存在",
		ERROR_INVALIDARGUMENT:        "请求参数错误",
		ERROR_PERMISSION_DENIED:      "权限不足",
		ERROR_UNAUTHORIZED:           "未登录",
		ERROR_EXIST:                  "内容已存在",
		ERROR_FORBIDDEN:              "禁止访问",
		ERROR_TOO_MANY_REQUESTS:      "请求过于频繁",
		ERROR_INVALID_TOKEN:          "无效的访问凭证",
		ERROR_LOGIC_QUOTE_TEXT_EMPTY: "引用类型的记录需要填写内容",
		ERROR_LOGIC_INVALID_DATE:     "日期格式错误，应为 YYYY-MM-DD",
		ERROR_UNSUPPORTED_FILE_TYPE:  "不支持的文件类型",
	},
}

type Localizer struct {
	bundle     *goi18n.Bundle
	localizers map[string]*goi18n.Localizer
}

func NewLocalizer(langs ...string) *Localizer {
	bundle := goi18n.NewBundle(language.English)

	l := &Localizer{
		bundle:     bundle,
		localizers: make(map[string]*goi18n.Localizer),
	}

	for _, lang := range langs {
		for id, content := range messages[lang] {
			bundle.AddMessages(language.Make(lang), &goi18n.Message{
				ID:    lang + "." + id,
				Other: content,
			})
		}
		l.localizers[lang] = goi18n.NewLocalizer(bundle, lang)
	}
	return l
}

// Get resolves a message key for the given language, falling back to the
// default language and finally to the key itself.
func (l *Localizer) Get(lang, key string) string {
	if !ALLOW_LANG[lang] {
		lang = DEFAULT_LANG
	}
	localizer, exist := l.localizers[lang]
	if !exist {
		return key
	}

	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: lang + "." + key})
	if err != nil {
		return key
	}
	return msg
}
