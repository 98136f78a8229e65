package general

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"text/template"
	"time"

	"tasktrack/pkg/constant"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// validation email
func IsValidEmail(email string) bool {
	emailRegex := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	re := regexp.MustCompile(emailRegex)
	return re.MatchString(email)
}

// Now ...
func Now() *time.Time {
	now := time.Now()
	return &now
}

// NowUTC ...
func NowUTC() *time.Time {
	now := time.Now().UTC()
	return &now
}

// EscapeLike escapes the LIKE wildcards so user text matches literally.
// Queries using the result must carry an ESCAPE '|' clause.
func EscapeLike(input string) string {
	replacer := strings.NewReplacer("|", "||", "%", "|%", "_", "|_")
	return replacer.Replace(input)
}

func SanitizeStringOfNumber(input string) string {
	re := regexp.MustCompile(`[^0-9]`)
	return re.ReplaceAllString(input, "")
}

// generate random password
func GeneratePassword(passwordLength, minSpecialChar, minNum, minUpperCase, minLowerCase int) string {
	var password strings.Builder
	var lowerCharSet string = "abcdedfghijklmnopqrstuvwxyz"
	var upperCharSet string = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var specialCharSet string = "!@#$%&*"
	var numberSet string = "0123456789"
	allCharSet := lowerCharSet + upperCharSet + specialCharSet + numberSet

	for i := 0; i < minSpecialChar; i++ {
		password.WriteByte(specialCharSet[rand.Intn(len(specialCharSet))])
	}
	for i := 0; i < minNum; i++ {
		password.WriteByte(numberSet[rand.Intn(len(numberSet))])
	}
	for i := 0; i < minUpperCase; i++ {
		password.WriteByte(upperCharSet[rand.Intn(len(upperCharSet))])
	}
	for i := 0; i < minLowerCase; i++ {
		password.WriteByte(lowerCharSet[rand.Intn(len(lowerCharSet))])
	}
	remaining := passwordLength - minSpecialChar - minNum - minUpperCase - minLowerCase
	for i := 0; i < remaining; i++ {
		password.WriteByte(allCharSet[rand.Intn(len(allCharSet))])
	}

	runes := []rune(password.String())
	rand.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
	return string(runes)
}

// FormatWithZWithoutChangingTime ...
func FormatWithZWithoutChangingTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05") + "Z"
}

// FormatDateOnly renders a due date the way the API exposes it,
// without time-of-day semantics.
func FormatDateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}

func ParseTemplateEmailToHtml(templateFileName string, data interface{}) string {
	t, err := template.ParseFiles(templateFileName)
	if err != nil {
		logrus.Errorf("error parsing template %s: %s", templateFileName, err.Error())
		return ""
	}
	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		logrus.Errorf("error executing template %s: %s", templateFileName, err.Error())
		return ""
	}
	return buf.String()
}

// ParseTemplateEmailToPlainText renders the text/plain alternative body
// from the html one.
func ParseTemplateEmailToPlainText(htmlStr string) string {
	var textBuilder strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(htmlStr))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			break
		}
		if tokenType == html.TextToken {
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text != "" {
				textBuilder.WriteString(text)
				textBuilder.WriteString("\n")
			}
		}
	}
	return textBuilder.String()
}

func TruncateSheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

func GenerateRedisKeyUserLogin(userId int) string {
	return fmt.Sprintf("%s%d", constant.REDIS_KEY_USER_LOGIN, userId)
}

func GetRedisUUIDArray(client *redis.Client, key string) []string {
	val, err := client.Get(context.Background(), key).Result()
	if err != nil {
		return nil
	}
	var uuids []string
	if err := json.Unmarshal([]byte(val), &uuids); err != nil {
		return nil
	}
	return uuids
}

func AppendUUIDToRedisArray(client *redis.Client, key string, newUUID string) {
	uuids := GetRedisUUIDArray(client, key)
	uuids = append(uuids, newUUID)
	data, err := json.Marshal(uuids)
	if err != nil {
		logrus.Errorf("error marshal uuid array for %s: %s", key, err.Error())
		return
	}
	if err := client.Set(context.Background(), key, string(data), 0).Err(); err != nil {
		logrus.Errorf("error set uuid array for %s: %s", key, err.Error())
	}
}

func RemoveUUIDFromRedisArray(client *redis.Client, key string, targetUUID string) {
	uuids := GetRedisUUIDArray(client, key)
	var kept []string
	for _, v := range uuids {
		if v != targetUUID {
			kept = append(kept, v)
		}
	}
	data, err := json.Marshal(kept)
	if err != nil {
		logrus.Errorf("error marshal uuid array for %s: %s", key, err.Error())
		return
	}
	if err := client.Set(context.Background(), key, string(data), 0).Err(); err != nil {
		logrus.Errorf("error set uuid array for %s: %s", key, err.Error())
	}
}
