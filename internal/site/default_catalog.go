package site

import "github.com/spec-kit/astro-booking/internal/domain"

const (
	en = domain.LanguageEnglish
	hi = domain.LanguageHindi
)

// DefaultCatalog returns the content shipped with the site.
func DefaultCatalog() *Catalog {
	return &Catalog{
		HeroTitle:    Text{en: "Guidance written in the stars", hi: "सितारों में लिखा मार्गदर्शन"},
		HeroSubtitle: Text{en: "Vedic astrology consultations for life, love and career", hi: "जीवन, प्रेम और करियर के लिए वैदिक ज्योतिष परामर्श"},
		HeroCTA:      Text{en: "Book a consultation", hi: "परामर्श बुक करें"},
		Services: []Service{
			{
				Slug:            "birth-chart",
				Title:           Text{en: "Birth chart reading", hi: "जन्म कुंडली विश्लेषण"},
				Description:     Text{en: "A full reading of your natal chart and planetary periods.", hi: "आपकी जन्म कुंडली और दशाओं का संपूर्ण विश्लेषण।"},
				DurationMinutes: 60,
				PriceINR:        2100,
			},
			{
				Slug:            "kundli-matching",
				Title:           Text{en: "Kundli matching", hi: "कुंडली मिलान"},
				Description:     Text{en: "Compatibility analysis for marriage.", hi: "विवाह के लिए गुण मिलान।"},
				DurationMinutes: 45,
				PriceINR:        1500,
			},
			{
				Slug:            "career",
				Title:           Text{en: "Career guidance", hi: "करियर मार्गदर्शन"},
				Description:     Text{en: "Timing and direction for professional decisions.", hi: "व्यावसायिक निर्णयों के लिए समय और दिशा।"},
				DurationMinutes: 30,
				PriceINR:        1100,
			},
			{
				Slug:            "vastu",
				Title:           Text{en: "Vastu consultation", hi: "वास्तु परामर्श"},
				Description:     Text{en: "Harmonise your home or office layout.", hi: "अपने घर या कार्यालय की व्यवस्था को संतुलित करें।"},
				DurationMinutes: 60,
				PriceINR:        3100,
			},
		},
		BookingTitle: Text{en: "Book your session", hi: "अपना सत्र बुक करें"},
		BookingNote:  Text{en: "We will call you to confirm the time.", hi: "समय की पुष्टि के लिए हम आपको कॉल करेंगे।"},
		Gallery: []GalleryImage{
			{URL: "/images/gallery/havan.jpg", Caption: Text{en: "Havan ceremony", hi: "हवन अनुष्ठान"}},
			{URL: "/images/gallery/chart.jpg", Caption: Text{en: "Chart preparation", hi: "कुंडली निर्माण"}},
			{URL: "/images/gallery/temple.jpg", Caption: Text{en: "Temple visit", hi: "मंदिर दर्शन"}},
		},
		Contact: Contact{
			Phone:   "+91 98765 43210",
			Email:   "contact@example.com",
			Address: Text{en: "12 Temple Road, Varanasi", hi: "12 मंदिर मार्ग, वाराणसी"},
			Hours:   Text{en: "Mon to Sat, 10:00 to 19:00", hi: "सोम से शनि, 10:00 से 19:00"},
		},
		SignupTitle: Text{en: "Create admin account", hi: "एडमिन खाता बनाएं"},
		SignupNote:  Text{en: "Staff accounts require an admin creation token.", hi: "स्टाफ खातों के लिए एडमिन टोकन आवश्यक है।"},
	}
}
