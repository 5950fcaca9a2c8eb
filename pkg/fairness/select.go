package fairness

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sort"
	"strconv"
)

// two64 = 2^64
const two64 = 18446744073709551616.0

// Message - сообщение для HMAC: publicSeed:nonce
func Message(publicSeed string, nonce uint64) string {
	return publicSeed + ":" + strconv.FormatUint(nonce, 10)
}

// Roll детерминированно отображает сиды и nonce в число из [0, 1).
// HMAC-SHA256 с ключом secret, первые 8 байт big-endian делятся на 2^64
func Roll(secret []byte, publicSeed string, nonce uint64) float64 {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(Message(publicSeed, nonce)))
	sum := mac.Sum(nil)

	v := binary.BigEndian.Uint64(sum[:8])
	x := float64(v) / two64
	// при v близком к 2^64 округление float64 дает ровно 1
	if x >= 1 {
		x = math.Nextafter(1, 0)
	}
	return x
}

// Pick проходит таблицу в порядке ItemID и возвращает первый предмет,
// накопленная вероятность которого больше x.
// Если из-за округления порог не пересечен, возвращается последний предмет
func Pick(t Table, x float64) (string, bool) {
	if len(t) == 0 {
		return "", false
	}
	if !sort.SliceIsSorted(t, func(i, j int) bool { return t[i].ItemID < t[j].ItemID }) {
		sorted := make(Table, len(t))
		copy(sorted, t)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })
		t = sorted
	}
	var cumulative float64
	for _, e := range t {
		cumulative += e.Probability
		if cumulative > x {
			return e.ItemID, true
		}
	}
	return t[len(t)-1].ItemID, true
}

// Select - полный выбор предмета по сидам. Чистая функция
func Select(secret []byte, publicSeed string, nonce uint64, t Table) (string, bool) {
	return Pick(t, Roll(secret, publicSeed, nonce))
}
