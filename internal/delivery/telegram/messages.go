// messages.go contains user-facing message templates.

package telegram

// Static messages.
const (
	msgNoSubjects = "Uzr, hozirda hech qanday fanga doir savollar topilmadi. Admin bilan bog'laning."

	msgNotSubscribed = "Bu botdagi quizlardan to'liq foydalanish uchun obuna bo'lishingiz kerak.\n\n" +
		"Obuna bo'lish uchun /payment buyrug'ini bering yoki admin bilan bog'laning."

	msgAdminOnly = "Kechirasiz, bu buyruq faqat adminlar uchun. 🤫"

	msgUsageAddSubscriber = "Qo'llash usuli: /addsubscriber <foydalanuvchi_chat_id> [kun_soni_tugashiga]"
	msgBadTargetID        = "Xato Chat ID. Raqam bo'lishi kerak."
	msgBadExpiryDays      = "Xato kun soni. Raqam bo'lishi kerak."
	msgExpiryDaysPositive = "Kun soni musbat raqam bo'lishi kerak."
	msgGrantFailed        = "Xatolik yuz berdi. Bot loglarini tekshiring."

	msgSubjectLoadError = "Kechirasiz, savollarni yuklashda xatolik yuz berdi."
	msgNoActiveQuiz     = "Aktiv quiz topilmadi. Qayta boshlash uchun /start buyrug'ini bering."
	msgChooseNewSubject = "Yangi fanni tanlash?"
	msgCancelled        = "Quiz bekor qilindi. Qayta boshlash uchun /start buyrug'ini bering."
	msgUnexpectedError  = "Uzr, kutilmagan xato yuz berdi. /start buyrug'ini bosib qayta uruning."
	msgAnswerBeforeNext = "Barcha savollarga javob berib bo'lgach, keyingisiga o'ting..."

	msgUnknownCommand = "Noma'lum buyruq. Boshlash uchun /start buyrug'ini bering."
)

// Format templates.
const (
	msgfWelcome = "Salom, %s!\nQuiz botimizga xush kelibsiz.\nFan tanlang yoki aralash savollardan boshlang:"

	msgfPaymentInstructions = "Obuna bo'lish uchun quyidagi amallarni bajaring:\n\n" +
		"💳 To'lov miqdori: 20000 so'm\n" +
		"🏢 To'lov usuli: PAYME / CLICK\n\n" +
		"To'lovni amalga oshirgandan so'ng, to'lov chekining rasmini (screenshot) va Telegram User ID'ingizni " +
		"(%d) admin manziliga yuboring.\n\n" +
		"Tasdiqlangandan so'ng, sizga botdan foydalanish huquqi beriladi."

	msgfQuizStarting = "Test boshlanmoqda: %s"
	msgfRemaining    = "Iltimos, qolgan %d ta savolga javob bering!"
	msgfQuizFinished = "Test tugadi!\nSizning natijangiz: %d/%d"

	msgfGrantDone         = "Foydalanuvchi %d uchun obuna faollashtirildi (%s)."
	msgfGrantNotifyFailed = "(Foydalanuvchiga faollashtirish xabarini yuborib bo'lmadi: %v)"

	msgfActivated = "Tabriklaymiz! Sizning obunangiz faollashtirildi%s.\n" +
		"Endi quizlardan foydalanishingiz mumkin. /start buyrug'ini bering!"
	msgfExpiringSoon = "Eslatma: obunangiz %s da tugaydi. Davom etish uchun obunani yangilang — /payment."

	msgfAnswerCorrect = "✅ To'g'ri!"
	msgfAnswerWrong   = "❌ Xato! To'g'ri javob: %s"
)

// Button labels.
const (
	btnRandomMix = "Random 50 savol"
	btnNextBatch = "Keyingi testlar"
)

const expiryTimeLayout = "2006-01-02 15:04"
