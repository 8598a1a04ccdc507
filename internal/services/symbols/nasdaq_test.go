package symbols

import "testing"

const sampleDirectory = "Nasdaq Traded|Symbol|Security Name|Listing Exchange|Market Category|ETF|Round Lot Size|Test Issue|Financial Status|CQS Symbol|NASDAQ Symbol|NextShares\n" +
	"Y|AAPL|Apple Inc. - Common Stock|Q|Q|N|100|N|N||AAPL|N\n" +
	"Y|SPY|SPDR S&P 500 ETF Trust|P|  |Y|100|N||SPY|SPY|N\n" +
	"Y|ZZZT|Test Listing - Test Issue|Q|Q|N|100|Y|N||ZZZT|N\n" +
	"Y|IBM|International Business Machines Corporation|N| |N|100|N||IBM|IBM|N\n" +
	"N|GONE|Delisted Corp - Common Stock|Q|Q|N|100|N|N||GONE|N\n" +
	"File Creation Time: 0818202517:01|||||||||||\n"

func TestParseDirectoryFilters(t *testing.T) {
	entries := ParseDirectory(sampleDirectory)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(entries), entries)
	}
	if entries[0].Symbol != "AAPL" || entries[0].Market != "NASDAQ" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[0].Name != "Apple Inc." {
		t.Fatalf("expected share-class suffix stripped, got %q", entries[0].Name)
	}
	if entries[1].Symbol != "IBM" || entries[1].Market != "NYSE" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestParseDirectoryDeduplicates(t *testing.T) {
	body := "header\nY|DUP|Dup Co - Common Stock|Q|Q|N|100|N|N||DUP|N\nY|DUP|Dup Co - Common Stock|Q|Q|N|100|N|N||DUP|N\n"
	entries := ParseDirectory(body)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after dedup, got %d", len(entries))
	}
}

func TestParseDirectoryEmpty(t *testing.T) {
	if entries := ParseDirectory(""); len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
