package planner

// TemplateID identifies one of the fixed parameterized graph queries
// the planner can select.
type TemplateID string

const (
	TemplateHotelByName     TemplateID = "hotel_by_name"
	TemplateHotelsInCity    TemplateID = "hotels_in_city"
	TemplateVisaCheck       TemplateID = "visa_check"
	TemplateByAgeGroup      TemplateID = "by_age_group"
	TemplateByTravellerType TemplateID = "by_traveller_type"
	TemplateByAttributes    TemplateID = "by_attributes"
	TemplateByRating        TemplateID = "by_rating"
	TemplateTopRated        TemplateID = "top_rated"
	TemplateHotelReviews    TemplateID = "hotel_reviews"
)

const hotelByNameQuery = `
MATCH (h:Hotel {name: $hotel_name})-[:LOCATED_IN]->(c:City)
RETURN h.name AS hotel, h.star_rating AS stars, h.average_reviews_score AS rating, c.name AS city,
       h.cleanliness_base AS cleanliness, h.comfort_base AS comfort, h.facilities_base AS facilities`

const hotelsInCityQuery = `
MATCH (h:Hotel)-[:LOCATED_IN]->(c:City {name: $city})
RETURN h.name AS hotel, h.star_rating, h.average_reviews_score
ORDER BY h.average_reviews_score DESC
LIMIT 10`

// A missing NEEDS_VISA edge means no visa is needed, so the absent
// relationship maps to the literal string rather than null.
const visaCheckQuery = `
MATCH (c1:Country {name: $from_country})
MATCH (c2:Country {name: $to_country})
OPTIONAL MATCH (c1)-[v:NEEDS_VISA]->(c2)
RETURN c1.name AS from, c2.name AS to,
       CASE WHEN v IS NULL THEN 'No Visa Required' ELSE v.visa_type END AS visa_requirement`

const byAgeGroupQuery = `
MATCH (t:Traveller)-[:WROTE]->(r:Review)-[:REVIEWED]->(h:Hotel)
WHERE t.age >= $age_min AND t.age <= $age_max
RETURN h.name AS hotel, avg(r.score_overall) AS rating
ORDER BY rating DESC LIMIT 5`

const byTravellerTypeQuery = `
MATCH (t:Traveller {type: $traveller_type})-[:WROTE]->(r:Review)-[:REVIEWED]->(h:Hotel)
RETURN h.name AS hotel, avg(r.score_overall) AS rating
ORDER BY rating DESC LIMIT 10`

const byAttributesQuery = `
MATCH (h:Hotel)
WHERE h.cleanliness_base >= $min_cleanliness
  AND h.comfort_base >= $min_comfort
  AND h.facilities_base >= $min_facilities
RETURN h.name AS hotel, h.star_rating, h.cleanliness_base, h.comfort_base, h.facilities_base
ORDER BY h.star_rating DESC
LIMIT 10`

const byRatingQuery = `
MATCH (h:Hotel)-[:LOCATED_IN]->(c:City)
WHERE h.average_reviews_score >= $minRating AND h.star_rating >= $minStars
RETURN h.name AS hotel, h.average_reviews_score, h.star_rating, c.name AS city
ORDER BY h.average_reviews_score DESC
LIMIT 10`

const topRatedQuery = `
MATCH (h:Hotel)<-[:REVIEWED]-(r:Review)
RETURN h.name AS hotel, avg(r.score_overall) AS rating
ORDER BY rating DESC LIMIT 5`

const hotelReviewsQuery = `
MATCH (h:Hotel {name: $hotel_name})<-[:REVIEWED]-(r:Review)<-[:WROTE]-(t:Traveller)
RETURN r.text AS review, r.date AS date, r.score_overall AS score, t.type AS traveller_type
ORDER BY r.date DESC
LIMIT 5`
