package crawler

import "testing"

func TestDefault(t *testing.T) {
	d := Default()
	crawlers := []string{
		"Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)",
		"Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)",
		"Twitterbot/1.0",
		"facebookexternalhit/1.1",
		"WhatsApp/2.23.20.0",
		"TelegramBot (like TwitterBot)",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
	}
	for _, ua := range crawlers {
		if !d.IsCrawler(ua) {
			t.Fatalf("%q should be a crawler", ua)
		}
	}
	browsers := []string{
		"",
		"Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_5) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
	}
	for _, ua := range browsers {
		if d.IsCrawler(ua) {
			t.Fatalf("%q should not be a crawler", ua)
		}
	}
}

func TestNewRegexp(t *testing.T) {
	d, err := NewRegexp("curl")
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsCrawler("CURL/8.0") || d.IsCrawler("Discordbot") {
		t.Fatal("custom pattern not applied")
	}
	if _, err := NewRegexp("("); err == nil {
		t.Fatal("want compile error")
	}
	if (Never{}).IsCrawler("Googlebot") {
		t.Fatal("Never should never match")
	}
}
