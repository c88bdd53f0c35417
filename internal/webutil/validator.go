// internal/webutil/validator.go
package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです (中国語)。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"english":  "英文",
	"chinese":  "中文",
	"words":    "单词列表",
	"content":  "内容",
	"line":     "文本行",
	"filename": "文件名",
	"url":      "网址",
	"pages":    "图片文字",
	"answer":   "答案",
	"card_id":  "卡片",
	"mode":     "模式",
	"text":     "文本",
	"mastered": "掌握状态",
	"title":    "标题",
}

func translatedField(fe validator.FieldError) string {
	if name, ok := fieldNameTranslations[fe.Field()]; ok {
		return name
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	chinese := zh.New()
	uni := ut.New(chinese, chinese)
	var found bool
	Trans, found = uni.GetTranslator("zh")
	if !found {
		log.Fatal("translator not found")
	}

	if err := zh_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// 個別メッセージの上書き。{0} はフィールド名、{1} はタグのパラメータ。
	override := func(tag, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translatedField(fe), fe.Param())
			return t
		})
	}

	override("required", "{0}为必填字段。")
	override("min", "{0}至少需要{1}项(或{1}个字符)。")
	override("max", "{0}不能超过{1}项(或{1}个字符)。")
	override("url", "{0}必须是有效的网址。")
	override("oneof", "{0}必须是[{1}]中的一个。")
	override("required_without_all", "url、html、text 至少需要提供一个。")
}
