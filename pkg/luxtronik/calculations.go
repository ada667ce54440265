package luxtronik

import "strings"

// CalculationVector is the read-only measurement block.
type CalculationVector struct {
	*Vector
}

func newCalculationVector() *CalculationVector {
	return &CalculationVector{Vector: newVector(calculationEntries)}
}

// FirmwareVersion joins the character slots of the software stand block.
func (c *CalculationVector) FirmwareVersion() string {
	var b strings.Builder
	for i := firmwareFirstSlot; i <= firmwareLastSlot && i < len(c.raw); i++ {
		ch := byte(c.raw[i])
		if ch == 0 {
			break
		}
		b.WriteByte(ch)
	}
	return b.String()
}

const (
	firmwareFirstSlot = 81
	firmwareLastSlot  = 90
)

// Well-known slots of the calculation vector. Temperatures are tenths of
// a degree, energy meters tenths of a kWh, operating counters plain
// seconds or impulses.
var calculationEntries = []Entry{
	{Index: 10, Name: "ID_WEB_Temperatur_TVL", Kind: KindCelsius},
	{Index: 11, Name: "ID_WEB_Temperatur_TRL", Kind: KindCelsius},
	{Index: 12, Name: "ID_WEB_Sollwert_TRL_HZ", Kind: KindCelsius},
	{Index: 13, Name: "ID_WEB_Temperatur_TRL_ext", Kind: KindCelsius},
	{Index: 14, Name: "ID_WEB_Temperatur_THG", Kind: KindCelsius},
	{Index: 15, Name: "ID_WEB_Temperatur_TA", Kind: KindCelsius},
	{Index: 16, Name: "ID_WEB_Mitteltemperatur", Kind: KindCelsius},
	{Index: 17, Name: "ID_WEB_Temperatur_TBW", Kind: KindCelsius},
	{Index: 18, Name: "ID_WEB_Einst_BWS_akt", Kind: KindCelsius},
	{Index: 19, Name: "ID_WEB_Temperatur_TWE", Kind: KindCelsius},
	{Index: 20, Name: "ID_WEB_Temperatur_TWA", Kind: KindCelsius},
	{Index: 26, Name: "ID_WEB_ASDin", Kind: KindBool},
	{Index: 27, Name: "ID_WEB_BWTin", Kind: KindBool},
	{Index: 28, Name: "ID_WEB_EVUin", Kind: KindBool},
	{Index: 29, Name: "ID_WEB_HDin", Kind: KindBool},
	{Index: 30, Name: "ID_WEB_MOTin", Kind: KindBool},
	{Index: 37, Name: "ID_WEB_AVout", Kind: KindBool},
	{Index: 38, Name: "ID_WEB_BUPout", Kind: KindBool},
	{Index: 39, Name: "ID_WEB_HUPout", Kind: KindBool},
	{Index: 43, Name: "ID_WEB_VBOout", Kind: KindBool},
	{Index: 44, Name: "ID_WEB_VD1out", Kind: KindBool},
	{Index: 45, Name: "ID_WEB_VD2out", Kind: KindBool},
	{Index: 46, Name: "ID_WEB_ZIPout", Kind: KindBool},
	{Index: 47, Name: "ID_WEB_ZUPout", Kind: KindBool},
	{Index: 48, Name: "ID_WEB_ZW1out", Kind: KindBool},
	{Index: 56, Name: "ID_WEB_Zaehler_BetrZeitVD1", Kind: KindSeconds},
	{Index: 57, Name: "ID_WEB_Zaehler_BetrZeitImpVD1", Kind: KindCount},
	{Index: 63, Name: "ID_WEB_Zaehler_BetrZeitWP", Kind: KindSeconds},
	{Index: 64, Name: "ID_WEB_Zaehler_BetrZeitHz", Kind: KindSeconds},
	{Index: 65, Name: "ID_WEB_Zaehler_BetrZeitBW", Kind: KindSeconds},
	{Index: 66, Name: "ID_WEB_Zaehler_BetrZeitKue", Kind: KindSeconds},
	{Index: 80, Name: "ID_WEB_WP_BZ_akt", Kind: KindOperationMode},
	{Index: 91, Name: "ID_WEB_AdresseIP_akt", Kind: KindIPv4},
	{Index: 92, Name: "ID_WEB_SubNetMask_akt", Kind: KindIPv4},
	{Index: 93, Name: "ID_WEB_Add_Broadcast", Kind: KindIPv4},
	{Index: 94, Name: "ID_WEB_Add_StdGateway", Kind: KindIPv4},
	{Index: 100, Name: "ID_WEB_ERROR_Time0", Kind: KindTimestamp},
	{Index: 105, Name: "ID_WEB_ERROR_Nr0", Kind: KindErrorCode},
	{Index: 110, Name: "ID_WEB_AnzahlFehlerInSpeicher", Kind: KindCount},
	{Index: 134, Name: "ID_WEB_AktuelleTimeStamp", Kind: KindTimestamp},
	{Index: 151, Name: "ID_WEB_WMZ_Heizung", Kind: KindEnergy},
	{Index: 152, Name: "ID_WEB_WMZ_Brauchwasser", Kind: KindEnergy},
	{Index: 153, Name: "ID_WEB_WMZ_Schwimmbad", Kind: KindEnergy},
	{Index: 154, Name: "ID_WEB_WMZ_Seit", Kind: KindEnergy},
	{Index: 155, Name: "ID_WEB_WMZ_Durchfluss", Kind: KindFlow},
	{Index: 173, Name: "ID_WEB_Temperatur_TFB2", Kind: KindCelsius},
	{Index: 175, Name: "ID_WEB_Temperatur_TEE", Kind: KindCelsius},
	{Index: 231, Name: "ID_WEB_Freq_VD", Kind: KindCount},
	{Index: 257, Name: "ID_WEB_Heat_Output", Kind: KindCount},
}
