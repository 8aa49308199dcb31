package application

// Prompt templates and user-facing literals. The bot speaks Vietnamese; every
// model call pairs one system template with one user template and expects a
// plain-text answer that is parsed defensively by the caller.

// Assistant persona for general-purpose replies outside the food flow.
const generalSystemPrompt = `Bạn là trợ lý AI giúp gợi ý món ăn dựa trên tiêu chí của người dùng.
Hãy trả lời ngắn gọn, thân thiện và chính xác.`

// Intent detection: expects a bare yes/no answer.
const (
	intentSystemPrompt = `Bạn là trợ lý AI phân tích ý định của người dùng.
Nhiệm vụ của bạn là xác định xem tin nhắn của người dùng có phải là yêu cầu gợi ý món ăn hoặc tìm quán ăn không.
Chỉ trả về "yes" nếu người dùng đang hỏi về việc gợi ý món ăn, tìm quán ăn, hoặc muốn biết nên ăn gì.
Trả về "no" cho tất cả các trường hợp khác.`

	intentUserPromptFormat = `Tin nhắn của người dùng: '%s'
Đây có phải là yêu cầu gợi ý món ăn hoặc tìm quán ăn không? Chỉ trả lời 'yes' hoặc 'no'.`
)

// Confirmation detection: expects a bare yes/no answer.
const (
	confirmSystemPrompt = `Bạn là trợ lý AI phân tích ý định của người dùng.
Nhiệm vụ của bạn là xác định xem tin nhắn của người dùng có phải là lời xác nhận danh sách tiêu chí món ăn không.
Chỉ trả về "yes" nếu người dùng đồng ý hoặc xác nhận. Trả về "no" cho tất cả các trường hợp khác.`

	confirmUserPromptFormat = `Tin nhắn của người dùng: '%s'
Đây có phải là lời xác nhận không? Chỉ trả lời 'yes' hoặc 'no'.`
)

// Criterion extraction: expects one criterion per line.
const (
	extractCriteriaSystemPrompt = `Bạn là trợ lý AI phân tích tin nhắn.
Nhiệm vụ của bạn là trích xuất các tiêu chí món ăn từ tin nhắn của người dùng.
Hãy trả về danh sách các tiêu chí, mỗi tiêu chí một dòng, không có giải thích hay định dạng khác.`

	extractCriteriaUserPromptFormat = `Trích xuất các tiêu chí món ăn từ tin nhắn sau:

"%s"

Hãy trả về danh sách các tiêu chí, mỗi tiêu chí một dòng, không có giải thích hay định dạng khác.`
)

// Criteria suggestion: expects one criterion per line.
const (
	suggestCriteriaSystemPrompt = `Bạn là trợ lý AI giúp gợi ý tiêu chí cho món ăn.
Dựa vào các tiêu chí hiện có và lịch sử hội thoại, hãy gợi ý thêm tiêu chí phù hợp.
Chỉ trả về danh sách các tiêu chí, mỗi tiêu chí một dòng, không có giải thích hay định dạng khác.`

	suggestCriteriaUserPromptFormat = `Dựa vào lịch sử hội thoại và các tiêu chí hiện có: %s,
hãy gợi ý thêm %d tiêu chí phù hợp để tìm kiếm món ăn.
Chỉ trả về danh sách các tiêu chí, mỗi tiêu chí một dòng, không có giải thích hay định dạng khác.`
)

// Venue ranking: expects one venue id per line, best match first.
const (
	rankVenuesSystemPrompt = `Bạn là trợ lý AI giúp xếp hạng các quán ăn dựa trên tiêu chí.
Nhiệm vụ của bạn là phân tích thông tin các quán ăn và xếp hạng chúng dựa trên mức độ phù hợp với tiêu chí.
Hãy trả về danh sách các ID quán ăn theo thứ tự từ phù hợp nhất đến ít phù hợp nhất, mỗi ID một dòng.`

	rankVenuesUserPromptFormat = `Dựa vào danh sách quán ăn sau:

%s

Và các tiêu chí: %s

Hãy xếp hạng các quán ăn dựa trên mức độ phù hợp với tiêu chí.
Chỉ trả về danh sách các ID quán ăn theo thứ tự từ phù hợp nhất đến ít phù hợp nhất, mỗi ID một dòng.`
)

// Dish suggestion fallback when no venues are found.
const (
	suggestFoodsSystemPrompt = `Bạn là trợ lý AI giúp gợi ý món ăn.
Nhiệm vụ của bạn là gợi ý các món ăn phù hợp với tiêu chí của người dùng.
Hãy cung cấp tên món, mô tả ngắn gọn, và lý do tại sao món đó phù hợp với tiêu chí.`

	suggestFoodsUserPromptFormat = `Dựa vào các tiêu chí: %s

Hãy gợi ý %d món ăn phù hợp.
Đối với mỗi món, hãy cung cấp:
1. Tên món
2. Mô tả ngắn gọn
3. Lý do tại sao món đó phù hợp với tiêu chí

Hãy định dạng kết quả rõ ràng và dễ đọc.`
)

// Bootstrap keyword lists used when the model is unavailable.
var (
	// commonCriteria doubles as the extraction fallback table and the
	// suggestion pool. Entries keep their display casing; matching is
	// case-insensitive.
	commonCriteria = []string{
		"khô", "nước", "chiên", "nướng", "xào", "hấp", "luộc", "cay", "ngọt", "mặn", "chua",
		"rau", "thịt", "hải sản", "chay", "nóng", "lạnh", "ăn nhanh", "ăn chậm", "sang trọng",
		"bình dân", "Việt Nam", "Trung Quốc", "Nhật Bản", "Hàn Quốc", "Thái Lan", "Ý", "Pháp",
	}

	foodIntentKeywords = []string{
		"gợi ý món ăn", "tìm món ăn", "món ăn", "ăn gì", "đề xuất món", "quán ăn", "nhà hàng",
	}

	confirmationKeywords = []string{
		"xác nhận", "đồng ý", "ok", "được", "tiếp tục", "yes", "có",
	}
)

// cancelKeyword aborts the food flow from any non-IDLE state.
const cancelKeyword = "hủy"

// User-facing literals.
const (
	welcomeMessageFormat = `Xin chào! Tôi là trợ lý AI giúp bạn tìm món ăn phù hợp.

Bạn có thể hỏi tôi về việc gợi ý món ăn hoặc tìm quán ăn phù hợp với sở thích của bạn.`

	helpMessage = `Tôi là trợ lý AI giúp bạn tìm món ăn phù hợp. Đây là cách sử dụng:

1. Hỏi tôi về việc gợi ý món ăn hoặc tìm quán ăn
2. Nhập các tiêu chí món ăn (ví dụ: nướng, cay, hải sản...)
3. Xác nhận tiêu chí bằng cách nhắn 'xác nhận'
4. Chia sẻ vị trí của bạn
5. Nhận gợi ý món ăn phù hợp

Bạn có thể nhắn /reset hoặc 'hủy' để bắt đầu lại quá trình tìm kiếm.`

	resetMessage = "Đã đặt lại quá trình tìm kiếm. Bạn có thể hỏi tôi về việc gợi ý món ăn bất cứ lúc nào."

	collectCriteriaPrompt = `Bạn muốn ăn món gì? Bạn có thể nhập tiêu chí như 'khô', 'nước', 'chiên', 'nướng', 'xào' hoặc bất kỳ tiêu chí nào khác. Bạn có thể nhập nhiều tiêu chí cùng lúc.`

	noCriteriaMessage = "Bạn chưa cung cấp tiêu chí nào. Vui lòng nhập tiêu chí để tôi có thể gợi ý món ăn phù hợp."

	locationRequestMessage = "Tuyệt vời! Bây giờ, vui lòng chia sẻ vị trí của bạn để tôi có thể tìm các quán ăn gần đó."

	locationReminderMessage = `Để tôi có thể gợi ý quán ăn gần bạn, vui lòng chia sẻ vị trí của bạn.

Bạn có thể sử dụng nút 'Chia sẻ vị trí' bên dưới.`

	processingMessage = "Đang tìm kiếm quán ăn gần bạn dựa trên tiêu chí đã chọn. Vui lòng đợi trong giây lát..."

	unexpectedLocationMessage = "Cảm ơn bạn đã chia sẻ vị trí. Nếu bạn muốn tìm món ăn, hãy hỏi tôi về việc gợi ý món ăn."

	criteriaReminderMessage = `Để tôi có thể gợi ý món ăn phù hợp, vui lòng cho tôi biết bạn thích ăn món gì?

Bạn có thể nhập tiêu chí như 'khô', 'nước', 'chiên', 'nướng', 'xào', 'cay', 'ngọt', 'mặn', 'chua', 'rau', 'thịt', 'hải sản', 'chay', 'nóng', 'lạnh', v.v.`

	serviceUnavailableMessage = `Xin lỗi, tôi đang gặp sự cố khi kết nối với máy chủ. Vui lòng thử lại sau.

Trong khi chờ đợi, bạn có thể thử lại với các tiêu chí khác hoặc chia sẻ vị trí khác.`

	genericApologyMessage = `Xin lỗi, đã xảy ra lỗi khi xử lý yêu cầu của bạn. Vui lòng thử lại sau.

Bạn có thể thử lại với các tiêu chí khác hoặc chia sẻ vị trí khác.`

	popularDishesMessage = `Tôi không thể đưa ra gợi ý cụ thể lúc này, nhưng đây là một số món ăn phổ biến mà bạn có thể thích: phở bò, cơm tấm, bún chả.

Bạn có thể cho tôi biết bạn thích ăn món gì để tôi có thể gợi ý chính xác hơn.`

	closingHint = "Bạn có thể hỏi tôi về việc gợi ý món ăn bất cứ lúc nào."
)
